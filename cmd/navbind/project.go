package main

import (
	"fmt"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/pkg/adapters/file"
	navhtml "github.com/aretw0/navbind/pkg/adapters/html"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/spf13/cobra"
)

// project is a page plus the bindings to apply to it, as selected by flags.
type project struct {
	page      *navhtml.Document
	loader    ports.BindingLoader
	bindings  []domain.Binding
	policy    domain.Policy
	eventType string
}

type projectFlags struct {
	page   string
	config string
	policy string
}

func flagsFrom(cmd *cobra.Command) projectFlags {
	page, _ := cmd.Flags().GetString("page")
	config, _ := cmd.Flags().GetString("config")
	policy, _ := cmd.Flags().GetString("policy")
	return projectFlags{page: page, config: config, policy: policy}
}

// loadProject parses the page and the bindings file. An empty page selects the
// built-in page; an empty config the default bindings.
func loadProject(f projectFlags) (*project, error) {
	p := &project{
		policy:    domain.PolicyBestEffort,
		eventType: domain.EventClick,
	}

	var err error
	if f.page == "" {
		p.page, err = navhtml.ParseDefault()
	} else {
		p.page, err = navhtml.ParseFile(f.page)
	}
	if err != nil {
		return nil, err
	}

	if f.config == "" {
		p.bindings = domain.DefaultBindings()
	} else {
		loader := file.NewLoader(f.config)
		cfg, err := loader.Config()
		if err != nil {
			return nil, err
		}
		p.bindings = cfg.Bindings
		p.policy = cfg.PolicyOrDefault()
		if cfg.Event != "" {
			p.eventType = cfg.Event
		}
		p.loader = loader
	}

	if f.policy != "" {
		p.policy, err = domain.ParsePolicy(f.policy)
		if err != nil {
			return nil, fmt.Errorf("--policy: %w", err)
		}
	}
	return p, nil
}

// binderOptions returns the facade options for this project.
func (p *project) binderOptions(extra ...navbind.Option) []navbind.Option {
	opts := []navbind.Option{
		navbind.WithPolicy(p.policy),
		navbind.WithEventType(p.eventType),
	}
	if p.loader != nil {
		opts = append(opts, navbind.WithLoader(p.loader))
	} else {
		opts = append(opts, navbind.WithBindings(p.bindings...))
	}
	return append(opts, extra...)
}
