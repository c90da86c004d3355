package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/raconfig/config"
	"github.com/dhamidi/raconfig/configprop"
	"github.com/dhamidi/raconfig/connector"
	"github.com/dhamidi/raconfig/java"
)

var ErrNotStarted = errors.New("deployer is not started")

// Deployment is the outcome of deploying one project.
type Deployment struct {
	Descriptor *connector.Descriptor
	Graph      *java.Graph
	Result     *Result
}

// Deployer loads a project and scans it. It is the kernel of a
// bootstrap.Runtime: starting it allocates the parse cache shared by
// successive deployments, stopping it releases the cache.
type Deployer struct {
	cfg   *config.Config
	cache *java.SourceCache
	log   commonlog.Logger
}

func NewDeployer(cfg *config.Config) *Deployer {
	return &Deployer{
		cfg: cfg,
		log: commonlog.GetLogger("raconfig.deployer"),
	}
}

func (d *Deployer) Config() *config.Config {
	return d.cfg
}

func (d *Deployer) Start(ctx context.Context) error {
	cache, err := java.NewSourceCache(d.cfg.CacheSize)
	if err != nil {
		return err
	}
	d.cache = cache
	return nil
}

func (d *Deployer) Stop(ctx context.Context) error {
	d.cache.Purge()
	d.cache = nil
	return nil
}

// LoadGraph parses the configured sources and type tables.
func (d *Deployer) LoadGraph(ctx context.Context) (*java.Graph, error) {
	if d.cache == nil {
		return nil, ErrNotStarted
	}
	graph := java.NewGraph()
	for _, t := range d.cfg.Types {
		classes, err := java.LoadTypesFile(d.cfg.Path(t))
		if err != nil {
			return nil, err
		}
		graph.Add(classes...)
	}
	for _, src := range d.cfg.Sources {
		classes, err := java.LoadSources(ctx, d.cfg.Path(src), d.cfg.Workers, d.cache)
		if err != nil {
			return nil, fmt.Errorf("load sources from %s: %w", src, err)
		}
		graph.Add(classes...)
	}
	d.log.Info("loaded type graph", "classes", graph.Len(), "cached", d.cache.Len())
	return graph, nil
}

// LoadDescriptor reads the configured ra.xml or returns an empty descriptor
// when there is none.
func (d *Deployer) LoadDescriptor() (*connector.Descriptor, error) {
	desc := connector.NewDescriptor()
	if path := d.cfg.DescriptorPath(); path != "" {
		var err error
		desc, err = connector.ReadRAXMLFile(path)
		if err != nil {
			return nil, err
		}
		d.log.Info("read deployment descriptor", "path", path)
	}
	if desc.ModuleName == "" {
		desc.ModuleName = d.cfg.ModuleName
	}
	return desc, nil
}

// Deploy loads the project and resolves its config properties. A scan
// aborted by a structural inconsistency returns the partial deployment
// together with the error.
func (d *Deployer) Deploy(ctx context.Context) (*Deployment, error) {
	graph, err := d.LoadGraph(ctx)
	if err != nil {
		return nil, err
	}
	desc, err := d.LoadDescriptor()
	if err != nil {
		return nil, err
	}

	var opts []Option
	if d.cfg.Defaults != "" {
		table, err := configprop.LoadDefaultsFile(d.cfg.Path(d.cfg.Defaults))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDefaults(table))
	}

	result, err := New(opts...).Scan(ctx, desc, graph)
	return &Deployment{Descriptor: desc, Graph: graph, Result: result}, err
}
