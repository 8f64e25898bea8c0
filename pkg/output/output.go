package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/truncate"
	"github.com/kazuma-desu/showmore/pkg/validator"
)

const unkeyed = "<text>"

// RenderOptions controls how truncated text is printed.
type RenderOptions struct {
	Format Format
	Labels Labels
	Expand bool
}

// PrintResult prints a single truncation result.
func PrintResult(r truncate.Result, opts RenderOptions) error {
	switch opts.Format {
	case FormatJSON:
		return printJSON(r)
	case FormatYAML:
		data, err := SerializeResult(r)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	case FormatTable:
		return PrintEntries([]*models.TruncatedEntry{{Result: r}}, opts)
	case FormatSimple, "":
		fmt.Println(renderText(r, opts))
		return nil
	default:
		return fmt.Errorf("output format %s is not supported for a single text", opts.Format)
	}
}

// PrintEntries prints a batch of truncated entries.
func PrintEntries(entries []*models.TruncatedEntry, opts RenderOptions) error {
	switch opts.Format {
	case FormatJSON:
		if entries == nil {
			entries = []*models.TruncatedEntry{}
		}
		return printJSON(entries)
	case FormatYAML:
		data, err := SerializeEntries(entries)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	case FormatTable:
		fmt.Println(RenderTable(entriesTable(entries, opts)))
		return nil
	case FormatTree:
		fmt.Println(buildEntryTree(entries, opts))
		return nil
	case FormatSimple, "":
		for _, e := range entries {
			printKeyed(e.Key, renderText(e.Result, opts))
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

func renderText(r truncate.Result, opts RenderOptions) string {
	if opts.Expand {
		return styledExpanded(r, opts.Labels)
	}
	return styledCollapsed(r, opts.Labels)
}

// printKeyed prints a key line followed by its text, or just the text for
// unkeyed entries.
func printKeyed(key, text string) {
	if key == "" {
		fmt.Println(text)
		return
	}
	fmt.Println(StyleIfTerminal(keyStyle, key))
	fmt.Println(text)
	fmt.Println()
}

func entriesTable(entries []*models.TruncatedEntry, opts RenderOptions) TableConfig {
	cfg := TableConfig{Headers: []string{"KEY", "VISIBLE", "HIDDEN", "TRUNCATED"}}
	for _, e := range entries {
		key := e.Key
		if key == "" {
			key = unkeyed
		}
		visible := Collapsed(e.Result, opts.Labels)
		if opts.Expand {
			visible = Expanded(e.Result, opts.Labels)
		}
		cfg.Rows = append(cfg.Rows, []string{
			key,
			Abbreviate(visible, cellWidth),
			Abbreviate(e.Hidden, cellWidth),
			fmt.Sprintf("%t", e.Truncated()),
		})
	}
	return cfg
}

// buildEntryTree groups keyed entries by path segment. Leaves show the
// collapsed text.
func buildEntryTree(entries []*models.TruncatedEntry, opts RenderOptions) *tree.Tree {
	root := tree.Root("/").
		RootStyle(treeRootStyle).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumeratorStyle)

	folders := map[string]*tree.Tree{"/": root}

	sorted := make([]*models.TruncatedEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	for _, e := range sorted {
		leafText := Abbreviate(Render(e.Result, opts.Labels, opts.Expand), cellWidth)

		parts := strings.Split(strings.Trim(e.Key, "/"), "/")
		parent := root
		current := ""
		for i, part := range parts {
			if i == len(parts)-1 {
				if part == "" {
					part = unkeyed
				}
				display := treeKeyStyle.Render(part) + " " + treeValueStyle.Render(leafText)
				parent.Child(tree.New().Root(display))
				break
			}

			current += "/" + part
			folder, ok := folders[current]
			if !ok {
				folder = tree.New().
					Root(treeFolderStyle.Render(part + "/")).
					EnumeratorStyle(treeEnumeratorStyle)
				parent.Child(folder)
				folders[current] = folder
			}
			parent = folder
		}
	}

	return root
}

// PrintValidationResult prints validation results with styling
func PrintValidationResult(result *validator.ValidationResult, strict bool) {
	if len(result.Issues) == 0 {
		msg := successStyle.Render("✓ Validation passed - no issues found")
		fmt.Println(successPanelStyle.Render(msg))
		return
	}

	errorCount, warningCount := result.Counts()

	var summary strings.Builder
	if errorCount > 0 {
		summary.WriteString(errorStyle.Render(fmt.Sprintf("✗ %d error(s)", errorCount)))
	}
	if warningCount > 0 {
		if summary.Len() > 0 {
			summary.WriteString(", ")
		}
		summary.WriteString(warningStyle.Render(fmt.Sprintf("⚠ %d warning(s)", warningCount)))
	}

	fmt.Println(infoPanelStyle.Render(summary.String()))
	fmt.Println()

	for _, issue := range result.Issues {
		prefix, style := "⚠", warningStyle
		if issue.Level == validator.LevelError {
			prefix, style = "✗", errorStyle
		}
		fmt.Println(style.Render(fmt.Sprintf("%s %s: %s", prefix, keyStyle.Render(issue.Key), issue.Message)))
	}
	fmt.Println()

	switch {
	case result.Valid:
		fmt.Println(successStyle.Render("✓ Validation passed"))
	case strict && warningCount > 0 && errorCount == 0:
		fmt.Println(errorStyle.Render("✗ Validation failed (strict mode: warnings treated as errors)"))
	default:
		fmt.Println(errorStyle.Render("✗ Validation failed"))
	}
}

// PrintValidationJSON prints validation results for scripts.
func PrintValidationJSON(result *validator.ValidationResult) error {
	return printJSON(result)
}

// PrintThresholds prints the effective settings a command runs with.
func PrintThresholds(th truncate.Thresholds, l Labels) {
	l = l.WithDefaults()
	rows := [][2]string{
		{"chars", formatLimit(th.Chars)},
		{"words", formatLimit(th.Words)},
		{"line-breaks", formatLimit(th.LineBreaks)},
		{"more-label", l.More},
		{"less-label", l.Less},
	}
	for _, row := range rows {
		fmt.Printf("%s %s\n", StyleIfTerminal(valueStyle, row[0]+":"), row[1])
	}
}

func formatLimit(n int) string {
	if n <= 0 {
		return "disabled"
	}
	return fmt.Sprintf("%d", n)
}

// PrintConfigView prints the configuration in the requested format.
func PrintConfigView(view *ConfigView, format Format) error {
	switch format {
	case FormatJSON:
		return printJSON(view)
	case FormatYAML, FormatSimple, "":
		return printYAML(view)
	default:
		return fmt.Errorf("unsupported output format for config: %s", format)
	}
}

// PrintContexts prints the configured contexts, marking the current one.
func PrintContexts(view *ConfigView, format Format) error {
	names := make([]string, 0, len(view.Contexts))
	for name := range view.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	switch format {
	case FormatJSON:
		return printJSON(view.Contexts)
	case FormatYAML:
		return printYAML(view.Contexts)
	case FormatTable:
		cfg := TableConfig{Headers: []string{"CURRENT", "NAME", "ENDPOINTS", "USER"}}
		for _, name := range names {
			ctx := view.Contexts[name]
			current := ""
			if name == view.CurrentContext {
				current = "*"
			}
			cfg.Rows = append(cfg.Rows, []string{current, name, strings.Join(ctx.Endpoints, ","), ctx.Username})
		}
		fmt.Println(RenderTable(cfg))
		return nil
	default:
		for _, name := range names {
			marker := "  "
			if name == view.CurrentContext {
				marker = "* "
			}
			endpoints := strings.Join(view.Contexts[name].Endpoints, ",")
			fmt.Printf("%s%s %s\n", marker, StyleIfTerminal(keyStyle, name), StyleIfTerminal(valueStyle, endpoints))
		}
		return nil
	}
}

// Info prints an info message
func Info(msg string) {
	fmt.Println(valueStyle.Render("⋯ " + msg))
}

// Success prints a success message
func Success(msg string) {
	fmt.Println(successStyle.Render("✓ " + msg))
}

// Error prints an error message
func Error(msg string) {
	fmt.Println(errorStyle.Render("✗ " + msg))
}

// Warning prints a warning message
func Warning(msg string) {
	fmt.Println(warningStyle.Render("⚠ " + msg))
}

// PrintError prints an error inside a bordered panel on stderr.
func PrintError(err error) {
	msg := errorStyle.Render(fmt.Sprintf("✗ Error: %v", err))
	fmt.Fprintln(os.Stderr, errorPanelStyle.Render(msg))
}

// PrintSecurityWarning prints the password storage security warning
func PrintSecurityWarning() {
	fmt.Println()
	Warning("Security Warning:")
	fmt.Println("  Your password is stored in plain text in the config file.")
	fmt.Println("  Ensure config file permissions are restrictive (0600).")
}

// Divider returns a muted horizontal rule of the given width.
func Divider(width int) string {
	return lipgloss.NewStyle().Foreground(colorMuted).Render(strings.Repeat("─", width))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printYAML(v any) error {
	data, err := yamlMarshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
