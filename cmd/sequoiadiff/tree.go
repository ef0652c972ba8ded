package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonahSussman/sequoia-diff/treeviz"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file.json>",
	Short: "Render a node tree as a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	root, err := loadJSONTree(args[0])
	if err != nil {
		return err
	}

	out, err := treeviz.Marshal(root)
	if err != nil {
		return err
	}

	fmt.Print(string(out))
	return nil
}
