// Package main is the Kioku CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/kioku/internal/chunker"
	"github.com/hyperjump/kioku/internal/cli"
	"github.com/hyperjump/kioku/internal/config"
	"github.com/hyperjump/kioku/internal/embedding"
	"github.com/hyperjump/kioku/internal/extract"
	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/search"
	"github.com/hyperjump/kioku/internal/server"
	"github.com/hyperjump/kioku/internal/storage"
	"github.com/hyperjump/kioku/internal/vector"
	"github.com/hyperjump/kioku/internal/watcher"
	"github.com/hyperjump/kioku/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kioku/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "kioku serve" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "serve":
		runServe()
	case "search":
		runSearch()
	case "add":
		runAdd()
	case "chunk":
		runChunk()
	case "ingest":
		runIngest()
	case "import":
		runImport()
	case "export":
		runExport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kioku version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store    storage.NoteStore
	Embedder embedding.Embedder
	Engine   *search.Engine
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config) (*Components, error) {
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	engine := search.NewEngine(embedder, embedding.NewMatrixCache())
	return &Components{Store: store, Embedder: embedder, Engine: engine}, nil
}

func loadNotes(ctx context.Context, store storage.NoteStore) ([]models.Note, error) {
	raw, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return models.Normalize(raw)
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (note reloads, watcher events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	state := server.NewAppState(components.Store, components.Engine)
	if err := state.Reload(context.Background()); err != nil {
		logger.Fatal("Failed to load notes", zap.Error(err))
	}
	logger.Info("notes loaded", zap.Int("count", state.Count()))

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watch *watcher.Watcher
	if cfg.Storage.Backend == config.BackendFile {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watch = watcher.New(cfg.Storage.NotesPath, func() {
			if err := state.Reload(context.Background()); err != nil {
				logger.Warn("notes reload failed", zap.Error(err))
				return
			}
			logger.Info("notes reloaded", zap.Int("count", state.Count()))
		}, watchOpts...)
		if err := watch.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(state, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watch != nil {
		watch.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "kioku search \"query\" -top-k 3"
// would otherwise leave -top-k unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// splitTags turns a comma-separated flag value into a tag list, dropping
// empty entries.
func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kioku search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Results are ranked by cosine similarity between the query and each note.
  • Use --category to restrict results to one category (exact match).
  • Use --tags a,b to keep only notes carrying all listed tags.
  • --min-similarity filters low-relevance hits; --top-k controls how many.

Examples:
  kioku search grocery list
  kioku search "grocery list"                     # same as above
  kioku search --category Programming slicing
  kioku search --tags python,lists --top-k 3 how do I slice
  kioku search --output json meeting notes        # structured JSON for other apps
`)
}

func runSearch() {
	searchArgs := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = search against local storage)")
	notesPath := fs.String("notes", "", "notes file override (uses the file backend)")
	embeddingsPath := fs.String("embeddings", "", "embedding artifact override")
	topK := fs.Int("top-k", 0, "number of results (0 = config default)")
	minSimilarity := fs.Float64("min-similarity", 0, "minimum cosine similarity in [0,1]")
	category := fs.String("category", "", "restrict results to this category (exact match)")
	tags := fs.String("tags", "", "comma-separated tags a note must all carry")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	params := models.SearchParams{
		Query:         queryStr,
		TopK:          *topK,
		MinSimilarity: *minSimilarity,
		Category:      *category,
		RequiredTags:  splitTags(*tags),
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if params.TopK == 0 {
		params.TopK = cfg.Search.DefaultTopK
	}
	if *notesPath != "" {
		cfg.Storage.Backend = config.BackendFile
		cfg.Storage.NotesPath = *notesPath
	}
	if *embeddingsPath != "" {
		cfg.Storage.EmbeddingsPath = *embeddingsPath
	}
	components, err := initializeComponents(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	ctx := context.Background()
	notes, err := loadNotes(ctx, components.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load notes: %v\n", err)
		os.Exit(1)
	}
	// Reuse a persisted embedding artifact when it matches the collection;
	// a missing or stale artifact just means the cache computes fresh.
	if m, fp, loadErr := vector.LoadMatrix(cfg.Storage.EmbeddingsPath); loadErr == nil {
		components.Engine.Cache().Adopt(notes, m, fp)
	}

	start := time.Now()
	results, err := components.Engine.SearchNotes(ctx, params, notes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	response := &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		Query:     queryStr,
		QueryTime: time.Since(start).Milliseconds(),
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, params models.SearchParams) (*models.SearchResponse, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runAdd() {
	addArgs := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	category := fs.String("category", models.DefaultCategory, "note category")
	tags := fs.String("tags", "", "comma-separated tags")
	_ = fs.Parse(addArgs)

	if fs.NArg() < 1 {
		fmt.Println("Usage: kioku add [flags] <content>")
		os.Exit(1)
	}
	content := buildQuery(fs.Args())
	if content == "" {
		fmt.Println("Usage: kioku add [flags] <content>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	note := models.Note{Content: content, Category: *category, Tags: splitTags(*tags)}
	if err := store.Append(context.Background(), note); err != nil {
		fmt.Printf("Failed to add note: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added note to %q\n", note.Category)
}

func runChunk() {
	chunkArgs := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("chunk", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	maxWords := fs.Int("max-words", 0, "words per chunk (0 = config default)")
	_ = fs.Parse(chunkArgs)

	if fs.NArg() < 1 {
		fmt.Println("Usage: kioku chunk [flags] <text>")
		os.Exit(1)
	}
	text := buildQuery(fs.Args())

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *maxWords == 0 {
		*maxWords = cfg.Search.ChunkMaxWords
	}
	notes, err := chunker.ChunkNotes(text, *maxWords)
	if err != nil {
		fmt.Printf("Chunking failed: %v\n", err)
		os.Exit(1)
	}
	if len(notes) == 0 {
		fmt.Println("Nothing to chunk")
		return
	}

	store, err := storage.New(&cfg.Storage)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Append(context.Background(), notes...); err != nil {
		fmt.Printf("Failed to save chunks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added %d chunk(s)\n", len(notes))
}

func runIngest() {
	ingestArgs := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	maxWords := fs.Int("max-words", 0, "words per chunk (0 = config default)")
	_ = fs.Parse(ingestArgs)

	if fs.NArg() < 1 {
		fmt.Println("Usage: kioku ingest [flags] <file>")
		fmt.Println("Supported formats: .txt, .md, .rst, .pdf, .docx, .xlsx")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *maxWords == 0 {
		*maxWords = cfg.Search.ChunkMaxWords
	}

	text, err := extract.NewExtractor().Extract(path)
	if err != nil {
		fmt.Printf("Extraction failed: %v\n", err)
		os.Exit(1)
	}
	notes, err := chunker.ChunkNotes(text, *maxWords)
	if err != nil {
		fmt.Printf("Chunking failed: %v\n", err)
		os.Exit(1)
	}
	if len(notes) == 0 {
		fmt.Printf("No text found in %s\n", path)
		return
	}
	// Tag every chunk with the source filename so it can be filtered later.
	sourceTag := strings.ToLower(filepath.Base(path))
	for i := range notes {
		notes[i].Tags = append(notes[i].Tags, sourceTag)
	}

	store, err := storage.New(&cfg.Storage)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Append(context.Background(), notes...); err != nil {
		fmt.Printf("Failed to save chunks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %d chunk(s) from %s\n", len(notes), path)
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kioku import [flags] <file.json>")
		os.Exit(1)
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}
	var raw []models.RawNote
	if err := json.Unmarshal(data, &raw); err != nil {
		fmt.Printf("Failed to parse notes: %v\n", err)
		os.Exit(1)
	}
	notes, err := models.Normalize(raw)
	if err != nil {
		fmt.Printf("Failed to normalize notes: %v\n", err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Append(context.Background(), notes...); err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d note(s)\n", len(notes))
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	notes, err := loadNotes(context.Background(), store)
	if err != nil {
		fmt.Printf("Failed to load notes: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if fs.NArg() > 0 {
		f, err := os.Create(fs.Arg(0))
		if err != nil {
			fmt.Printf("Failed to create file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		os.Exit(1)
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Notes            int                    `json:"notes"`
	EmbeddingsCached bool                   `json:"embeddings_cached"`
	Fingerprint      string                 `json:"fingerprint,omitempty"`
	DiskUsageBytes   *int64                 `json:"disk_usage_bytes,omitempty"`
	Config           map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = use local storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		store, err := storage.New(&cfg.Storage)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize storage: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		notes, err := loadNotes(context.Background(), store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load notes: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Notes: len(notes),
			Config: map[string]interface{}{
				"provider":   cfg.Embedding.Provider,
				"dimensions": cfg.Embedding.Dimensions,
				"backend":    cfg.Storage.Backend,
			},
		}
		diskBytes, err := storage.DiskUsageBytes(
			cfg.Storage.NotesPath, cfg.Storage.DatabasePath, cfg.Storage.EmbeddingsPath,
		)
		if err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("notes:              %d   # count of stored notes\n", status.Notes)
		fmt.Printf("embeddings_cached:  %t\n", status.EmbeddingsCached)
		if status.Fingerprint != "" {
			fmt.Printf("fingerprint:        %s\n", status.Fingerprint)
		}
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d   # notes + embeddings on disk\n", *status.DiskUsageBytes)
		}
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"provider", "dimensions", "backend"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-19s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`kioku - Semantic note retrieval

Usage:
  kioku serve [flags]             Start the HTTP server
  kioku search [flags] <query>    Search notes by meaning
  kioku add [flags] <content>     Add a note
  kioku chunk [flags] <text>      Split text into note-sized chunks and store them
  kioku ingest [flags] <file>     Extract text from a document and store it as chunks
  kioku import [flags] <file>     Merge notes from a JSON file into the collection
  kioku export [flags] [file]     Write the collection as JSON (stdout by default)
  kioku status [flags]            Show collection and cache status
  kioku version                   Show version
  kioku help                      Show this help

Serve Flags:
  --config string    Config file path (default: /usr/local/etc/kioku/config.yaml)
  --debug            Enable debug logging (note reloads, watcher events, etc.)

Search Flags:
  --config string           Config file path
  --server string           Server URL (empty = search against local storage)
  --notes string            Notes file override (uses the file backend)
  --embeddings string       Embedding artifact override
  --top-k int               Number of results (default from config)
  --min-similarity float    Minimum cosine similarity in [0,1]
  --category string         Restrict results to this category (exact match)
  --tags string             Comma-separated tags a note must all carry
  --output string           Output format: text or json (default: text)

Examples:
  kioku serve
  kioku add --category Work --tags meeting,q3 "Discuss launch timeline"
  kioku search "launch timeline"
  kioku search --tags meeting --top-k 3 launch
  kioku ingest report.pdf
  kioku export backup.json
  kioku status --output json`)
}
