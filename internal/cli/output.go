package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/assetdeck/backend/internal/apiclient"
)

// printJSON prints v as indented JSON to stdout.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func folderTable(folders []apiclient.Folder) {
	if len(folders) == 0 {
		fmt.Println("No folders found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tFILES")
	for _, f := range folders {
		fmt.Fprintf(w, "%s\t%s\t%d\n", f.Name, f.ID, f.FileCount)
	}
	w.Flush()
}

func fileTable(files []apiclient.File) {
	if len(files) == 0 {
		fmt.Println("No files found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tTYPE\tSIZE\tCHANNELS")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.Name, f.ID, f.Type, formatSize(f.Size), strings.Join(f.Channels, ","))
	}
	w.Flush()
}

func ruleTable(rules []apiclient.AccessRule) {
	if len(rules) == 0 {
		fmt.Println("No rules.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tCRITERIA\tOPERATOR\tVALUES")
	for _, r := range rules {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.Position, r.ID, r.Criteria, r.Operator, strings.Join(r.Values, ", "))
	}
	w.Flush()
}

func accessDetail(view apiclient.EffectiveAccess) {
	fmt.Printf("Source:    %s\n", view.Source)
	fmt.Printf("Inherited: %v\n", view.Inherited)
	fmt.Println("\nActive rules:")
	ruleTable(view.ActiveRules)
	if len(view.ShadowedRules) > 0 {
		fmt.Println("\nShadowed file rules:")
		ruleTable(view.ShadowedRules)
	}
}

func scenarioTable(list apiclient.ScenarioList) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAVAILABLE\tACTIVE")
	for _, s := range list.Scenarios {
		active := ""
		if s.ID == list.Current {
			active = "*"
		}
		available := "no"
		if s.Available {
			available = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, available, active)
	}
	w.Flush()
}
