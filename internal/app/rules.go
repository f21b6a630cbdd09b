package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fixforge/internal/config"
	"github.com/blackwell-systems/fixforge/internal/output"
	"github.com/blackwell-systems/fixforge/internal/rules"
)

var (
	rulesCategory string
	rulesJSON     bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the detection rule catalog",
	Long: `Rules prints every detection rule with its category, severity, CWE
mapping, and whether a fix is derived deterministically or delegated to the
AI model.`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesCategory, "category", "", "Only show rules in this category")
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(rulesCmd)
}

// ruleInfo is the serializable view of one catalog entry.
type ruleInfo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	CWE         string `json:"cwe_id,omitempty"`
	Fix         string `json:"fix"`
	Description string `json:"description"`
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	reg := rules.Default()

	var infos []ruleInfo
	for _, cat := range reg.Categories() {
		if rulesCategory != "" && string(cat) != rulesCategory {
			continue
		}
		for _, r := range reg.RulesFor(cat) {
			fix := "template"
			if r.FixTemplate == "" {
				fix = "ai"
			}
			infos = append(infos, ruleInfo{
				ID:          r.ID,
				Category:    string(r.Category),
				Severity:    string(r.Severity),
				CWE:         r.CWE,
				Fix:         fix,
				Description: r.Description,
			})
		}
	}
	if len(infos) == 0 && rulesCategory != "" {
		return fmt.Errorf("unknown category %q", rulesCategory)
	}

	if rulesJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Println(output.Section(fmt.Sprintf("Rule Catalog (%d rules)", len(infos))))
	fmt.Println()
	tbl := output.NewTable("Severity", "Rule", "Category", "CWE", "Fix")
	for _, info := range infos {
		cwe := info.CWE
		if cwe == "" {
			cwe = "-"
		}
		tbl.AddStyledRow(output.SeverityStyle(rules.Severity(info.Severity)),
			info.Severity, info.ID, info.Category, cwe, info.Fix)
	}
	tbl.Print()
	return nil
}
