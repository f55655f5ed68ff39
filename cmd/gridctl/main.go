package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagrid/components/chartdata"
	console "github.com/goliatone/go-datagrid/components/console"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a panel definition, provider stub, and manifest entry."`
	Sample   sampleCmd   `cmd:"" help:"Downsample a JSON series file to a bounded number of points."`
	Export   exportCmd   `cmd:"" help:"Filter a TOML data file and export the result as CSV."`
	Inspect  inspectCmd  `cmd:"" help:"Print a column report for a TOML data file."`
}

var successMark = color.New(color.FgGreen).Sprint("✓")

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Grid and chart tooling for go-datagrid consoles."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type scaffoldCmd struct {
	Code            string   `required:"" help:"Fully-qualified panel code (e.g. acme.panel.stats)."`
	Name            string   `required:"" help:"Display name for the panel."`
	Description     string   `required:"" help:"One-line description used in manifests."`
	Category        string   `default:"custom" help:"Panel category (analytics, grids, charts, etc.)."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the panel manifest YAML/JSON file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the panel configuration."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer      []string `help:"Maintainers to record in the manifest."`
	Capabilities    []string `help:"Provider capability labels (html,json,sse,...)."`
	DocsURL         string   `help:"Link to provider documentation."`
	Channel         string   `help:"Distribution channel label (community, partner, internal)."`
	ProviderPackage string   `default:"github.com/goliatone/go-datagrid/components/console" help:"Go package where the provider factory lives."`
	ProviderEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Panel>Provider)."`
	ProviderOut     string   `help:"File path for the generated provider stub (defaults to components/console/providers/<code>_provider.go)."`
	Overwrite       bool     `help:"Overwrite existing provider stub / manifest entry if present."`
	SkipProvider    bool     `name:"skip-provider" help:"Skip provider stub generation."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("gridctl: panel code %s must contain at least one '.' segment", cmd.Code)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("gridctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, panel := range doc.Panels {
			if panel.Definition.Code == cmd.Code {
				return fmt.Errorf("gridctl: manifest already defines panel %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.Code)
	providerType := baseName + "Provider"
	providerEntry := cmd.ProviderEntry
	if providerEntry == "" {
		providerEntry = fmt.Sprintf("%s.New%s", cmd.ProviderPackage, providerType)
	}

	entry := console.ManifestPanel{
		Definition: console.PanelDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Provider: console.ManifestProvider{
			Name:         fmt.Sprintf("%s Provider", cmd.Name),
			Summary:      cmd.Description,
			Entry:        providerEntry,
			Package:      cmd.ProviderPackage,
			DocsURL:      cmd.DocsURL,
			Capabilities: cmd.Capabilities,
			Channel:      cmd.Channel,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Panels {
			if doc.Panels[idx].Definition.Code == cmd.Code {
				doc.Panels[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Panels = append(doc.Panels, entry)
		}
	} else {
		doc.Panels = append(doc.Panels, entry)
	}

	sort.Slice(doc.Panels, func(i, j int) bool {
		return doc.Panels[i].Definition.Code < doc.Panels[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(os.Stdout, "%s Added %s to %s (provider entry recorded as %s)\n", successMark, cmd.Code, manifestPath, providerEntry)
		return nil
	}

	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "console", "providers", fmt.Sprintf("%s_provider.go", sanitizeFileName(cmd.Code)))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s Added %s to %s and generated %s\n", successMark, cmd.Code, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("gridctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("gridctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*console.PanelManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &console.PanelManifestDocument{
				Version: console.ManifestVersion,
				Panels:  []console.ManifestPanel{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("gridctl: stat manifest: %w", err)
	}
	return console.ReadManifest(path)
}

func writeManifest(path string, doc *console.PanelManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gridctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gridctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("gridctl: write manifest: %w", err)
	}
	return nil
}

func writeProviderStub(path, providerType, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("gridctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gridctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(`package console

import (
	"context"
)

// %s fetches data for %s panels.
type %s struct{}

// New%s wires the provider into the console registry.
func New%s() Provider {
	return &%s{}
}

// Fetch retrieves the panel payload. Replace with your implementation.
func (p *%s) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	_ = meta
	return PanelData{
		"message": "replace with real data",
	}, nil
}
`, providerType, code, providerType, providerType, providerType, providerType, providerType)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("gridctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}

type sampleCmd struct {
	Input     string `arg:"" type:"path" help:"JSON file containing an array of points (objects with label/value fields)."`
	Output    string `short:"o" type:"path" help:"Destination file (defaults to stdout)."`
	MaxPoints int    `default:"200" help:"Maximum number of points to keep."`
	Strategy  string `default:"uniform" enum:"uniform,adaptive,time-based" help:"Sampling strategy."`
	AxisKey   string `help:"Field to sort by when using time-based sampling."`
}

func (cmd *sampleCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return fmt.Errorf("gridctl: read input: %w", err)
	}
	var points []chartdata.Point
	if err := json.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("gridctl: parse input: %w", err)
	}

	sampled := chartdata.SampleAxis(points, cmd.MaxPoints, chartdata.Strategy(cmd.Strategy), cmd.AxisKey)

	out, err := json.MarshalIndent(sampled, "", "  ")
	if err != nil {
		return fmt.Errorf("gridctl: encode output: %w", err)
	}
	if cmd.Output == "" {
		fmt.Fprintln(os.Stdout, string(out))
	} else if err := os.WriteFile(cmd.Output, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("gridctl: write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s Sampled %s points down to %s (%s)\n",
		successMark,
		color.New(color.Bold).Sprint(len(points)),
		color.New(color.Bold).Sprint(len(sampled)),
		cmd.Strategy,
	)
	return nil
}

// gridFile is the TOML shape consumed by the export command.
type gridFile struct {
	Columns []gridColumn     `toml:"columns"`
	Rows    []map[string]any `toml:"rows"`
}

type gridColumn struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Width int    `toml:"width"`
}

type exportCmd struct {
	Input    string `arg:"" type:"path" help:"TOML file with [[columns]] and [[rows]] tables."`
	OutDir   string `short:"d" default:"." type:"path" help:"Directory that receives the CSV artifact."`
	Filename string `short:"f" default:"export.csv" help:"CSV file name."`
	Filter   string `help:"Optional case-insensitive filter applied across all columns."`
}

func (cmd *exportCmd) Run(_ context.Context) error {
	var file gridFile
	if _, err := toml.DecodeFile(cmd.Input, &file); err != nil {
		return fmt.Errorf("gridctl: parse data file: %w", err)
	}
	if len(file.Columns) == 0 {
		return errors.New("gridctl: data file defines no columns")
	}

	columns := make([]datagrid.Column, len(file.Columns))
	for i, col := range file.Columns {
		id := strcase.ToSnake(col.ID)
		label := col.Label
		if label == "" {
			label = strcase.ToCase(col.ID, strcase.TitleCase, ' ')
		}
		columns[i] = datagrid.Column{ID: id, Label: label, Width: col.Width}
	}

	rows := make([]datagrid.Row, len(file.Rows))
	for i, raw := range file.Rows {
		row := make(datagrid.Row, len(raw))
		for k, v := range raw {
			row[strcase.ToSnake(k)] = v
		}
		rows[i] = row
	}

	table := datagrid.New(columns)
	table.SetRows(rows)
	if cmd.Filter != "" {
		table.Search(cmd.Filter)
	}

	sink := datagrid.DirSink{Dir: cmd.OutDir}
	if err := table.ExportCSV(sink, cmd.Filename); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s Wrote %s rows to %s\n",
		successMark,
		color.New(color.Bold).Sprint(len(table.FilteredRows())),
		filepath.Join(cmd.OutDir, cmd.Filename),
	)
	return nil
}

type inspectCmd struct {
	Input string `arg:"" type:"path" help:"TOML file with [[columns]] and [[rows]] tables."`
}

func (cmd *inspectCmd) Run(_ context.Context) error {
	var file gridFile
	if _, err := toml.DecodeFile(cmd.Input, &file); err != nil {
		return fmt.Errorf("gridctl: parse data file: %w", err)
	}
	if len(file.Columns) == 0 {
		return errors.New("gridctl: data file defines no columns")
	}

	bold := color.New(color.Bold)
	fmt.Fprintf(os.Stdout, "%s %s: %s columns, %s rows\n",
		successMark,
		cmd.Input,
		bold.Sprint(len(file.Columns)),
		bold.Sprint(len(file.Rows)),
	)
	for _, col := range file.Columns {
		id := strcase.ToSnake(col.ID)
		label := col.Label
		if label == "" {
			label = strcase.ToCase(col.ID, strcase.TitleCase, ' ')
		}
		filled := 0
		for _, raw := range file.Rows {
			if v, ok := raw[col.ID]; ok && v != nil && fmt.Sprint(v) != "" {
				filled++
			}
		}
		width := "auto"
		if col.Width > 0 {
			width = fmt.Sprintf("%dpx", col.Width)
		}
		fmt.Fprintf(os.Stdout, "  %s  %q  width=%s  filled=%d/%d\n",
			bold.Sprint(id), label, width, filled, len(file.Rows))
	}
	return nil
}
