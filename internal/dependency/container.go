// Package dependency wires the CLI's core services using go.uber.org/dig.
package dependency

import (
	"go.uber.org/dig"

	"github.com/hedgineer/aiapi"
	"github.com/hedgineer/aiapi/internal/config"
	"github.com/hedgineer/aiapi/providers"
	"github.com/hedgineer/aiapi/schema"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider schema.LLMProvider
	app      *aiapi.App
}

func (c *Container) Provider() schema.LLMProvider { return c.provider }
func (c *Container) App() *aiapi.App              { return c.app }

// New builds and wires the core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(newApp); err != nil {
		return nil, err
	}

	c := &Container{}
	if err := d.Invoke(func(p schema.LLMProvider, app *aiapi.App) {
		c.provider = p
		c.app = app
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func newProvider(cfg *config.Config) schema.LLMProvider {
	return providers.New(providers.Params{
		APIKey:       cfg.ResolveAPIKey(),
		APIBase:      cfg.Provider.APIBase,
		DefaultModel: cfg.Provider.Model,
	})
}

func newApp(cfg *config.Config, provider schema.LLMProvider) *aiapi.App {
	return aiapi.New(provider, aiapi.Options{
		Model:               cfg.Provider.Model,
		IdentifyTemperature: cfg.Query.IdentifyTemperature,
		AnswerTemperature:   cfg.Query.AnswerTemperature,
		WithExamples:        cfg.Query.WithExamples,
	})
}
