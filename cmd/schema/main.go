package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yumosx/lazy/internal/config"
	"github.com/yumosx/lazy/internal/probe"
)

func main() {
	schema := config.Schema()

	// Suggest the built-in scenario names. Not an enum, since globs are
	// accepted too.
	if optionsDef, ok := schema.Definitions["Options"]; ok {
		if scenariosProp, ok := optionsDef.Properties.Get("scenarios"); ok && scenariosProp.Items != nil {
			for _, name := range probe.Names() {
				scenariosProp.Items.Examples = append(scenariosProp.Items.Examples, name)
			}
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(schema); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding schema: %v\n", err)
		os.Exit(1)
	}
}
