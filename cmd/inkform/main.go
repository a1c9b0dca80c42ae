package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/inkform/inkform/internal/config"
	"github.com/inkform/inkform/internal/document"
	"github.com/inkform/inkform/internal/editor"
	"github.com/inkform/inkform/internal/export"
	"github.com/inkform/inkform/internal/fonts"
	"github.com/inkform/inkform/internal/logging"
	"github.com/inkform/inkform/internal/model"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// Layout is the on-disk description of an editing session's result: the
// recipients and the fields placed on the document, in document space.
type Layout struct {
	Recipients []model.Recipient `json:"recipients"`
	Fields     []model.Field     `json:"fields"`
}

// setupLogging routes module logs to stderr at the configured level.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logging.SetLogger(slog.New(handler))
}

// loadLayout reads and validates a field layout file. Fields must reference
// a recipient from the layout itself, or, when the layout carries no
// recipients of its own, one from the fallback set (persisted session
// recipients): the field-to-recipient link must always resolve.
func loadLayout(path string, fallback []model.Recipient) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	known := make(map[string]bool, len(layout.Recipients))
	for _, r := range layout.Recipients {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid recipient %s: %w", r.ID, err)
		}
		known[r.ID] = true
	}
	if len(layout.Recipients) == 0 {
		for _, r := range fallback {
			known[r.ID] = true
		}
	}
	for _, f := range layout.Fields {
		if !f.Type.Valid() {
			return nil, fmt.Errorf("field %s has unknown type %q", f.ID, f.Type)
		}
		if !known[f.RecipientID] {
			return nil, fmt.Errorf("field %s references unknown recipient %q", f.ID, f.RecipientID)
		}
	}

	return &layout, nil
}

// inspect prints page geometry and a text preview of the source document.
func inspect(sess *document.Session) error {
	texts, err := sess.InspectText()
	if err != nil {
		return err
	}

	previews := make(map[int]string, len(texts))
	for _, t := range texts {
		previews[t.PageIndex] = t.Text
	}

	fmt.Printf("pages: %d\n", sess.PageCount())
	for _, p := range sess.Pages() {
		dim, _ := sess.PageDim(p.PageIndex)
		fmt.Printf("page %d: %.0fx%.0f px (render) / %.2fx%.2f pt (native)\n",
			p.PageIndex+1, p.Width, p.Height, dim.Width, dim.Height)
		if preview := previews[p.PageIndex]; preview != "" {
			fmt.Printf("  %s\n", preview)
		}
	}
	return nil
}

func run(cfg *config.Config) error {
	source, err := os.ReadFile(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to read source PDF: %w", err)
	}

	sess, err := document.Load(source, cfg.MaxFileSize)
	if err != nil {
		return err
	}
	defer sess.Close()

	if cfg.Inspect {
		return inspect(sess)
	}

	// Rehydrate the persisted session (recipients, zoom); a fresh session
	// starts from the default recipients.
	store := editor.NewStore()
	if err := store.LoadFrom(cfg.StateFile); err != nil {
		logging.Logger().Warn("ignoring unreadable editor state", "path", cfg.StateFile, "err", err)
	}
	store.SeedDefaultRecipients()
	store.SetPages(sess.Pages())

	layout, err := loadLayout(cfg.Layout, store.State().Recipients)
	if err != nil {
		return err
	}

	// The layout's own recipients win; a layout without any uses the
	// rehydrated set.
	recipients := layout.Recipients
	if len(recipients) == 0 {
		recipients = store.State().Recipients
	}
	current := store.State().CurrentRecipient
	found := false
	for _, r := range recipients {
		if r.ID == current {
			found = true
			break
		}
	}
	if !found {
		current = recipients[0].ID
	}
	store.ApplySnapshot(model.Snapshot{
		Fields:           layout.Fields,
		Recipients:       recipients,
		CurrentRecipient: current,
	})

	engine := export.NewEngine(fonts.NewResolver(cfg.FontsDirectory))
	result, err := engine.Export(source, store.State().Fields)
	if err != nil {
		return err
	}

	output := document.ExportFilename(cfg.Output)
	if err := os.WriteFile(output, result.PDF, 0o600); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}

	if err := store.SaveTo(cfg.StateFile); err != nil {
		logging.Logger().Warn("failed to save editor state", "path", cfg.StateFile, "err", err)
	}

	fmt.Printf("wrote %s (%d fields stamped, %d skipped)\n", output, result.Stamped, result.Skipped)
	return nil
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			fmt.Printf("inkform %s (built %s, commit %s)\n", version, buildTime, gitCommit)
			os.Exit(0)
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
