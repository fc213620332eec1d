// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

// env_config writes the list of environment variables that can override
// tilesd settings.
package main

import (
	"bytes"
	"log"
	"os"
	"text/tabwriter"

	"github.com/troopdegen/vonage-video-react-app-sub000/service"

	"github.com/kelseyhightower/envconfig"
)

const usageFormat = "### Config Environment Overrides\n\n```\nKEY\tTYPE\n{{range .}}{{usage_key .}}\t{{usage_type .}}\n{{end}}```\n"

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <output file>", os.Args[0])
	}

	var buf bytes.Buffer
	tabs := tabwriter.NewWriter(&buf, 1, 0, 4, ' ', 0)
	if err := envconfig.Usagef("tilesd", &service.Config{}, tabs, usageFormat); err != nil {
		log.Fatalf("failed to generate usage: %s", err)
	}
	if err := tabs.Flush(); err != nil {
		log.Fatalf("failed to flush usage: %s", err)
	}

	if err := os.WriteFile(os.Args[1], buf.Bytes(), 0644); err != nil {
		log.Fatalf("failed to write file: %s", err)
	}
}
