package geometry

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/inkform/internal/svg"
	"github.com/jmylchreest/inkform/pkg/geomplugin"
)

// ConnectPlugin launches an external geometry provider binary and
// returns a Provider backed by it, plus a close function that tears
// the plugin process down. The returned provider degrades per
// operation like any other: a remote ErrUnsupported surfaces as the
// local ErrUnsupported.
func ConnectPlugin(path string, logger hclog.Logger) (Provider, func(), error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  geomplugin.Handshake,
		Plugins:          map[string]plugin.Plugin{"geometry": &geomplugin.ProviderPlugin{}},
		Cmd:              exec.Command(path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger.Named("geometry-plugin"),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("connecting to geometry plugin: %w", err)
	}

	raw, err := rpcClient.Dispense("geometry")
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("dispensing geometry provider: %w", err)
	}

	remote, ok := raw.(geomplugin.Provider)
	if !ok {
		client.Kill()
		return nil, nil, fmt.Errorf("geometry plugin %s serves an unexpected interface", path)
	}

	return &remoteProvider{remote: remote}, client.Kill, nil
}

// remoteProvider adapts the public plugin interface onto the internal
// Provider types.
type remoteProvider struct {
	remote geomplugin.Provider
}

func (p *remoteProvider) BoundingBox(shape Shape) (Rect, error) {
	r, err := p.remote.BoundingBox(wireShape(shape))
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}, localErr(err)
}

func (p *remoteProvider) PathLength(shape Shape) (float64, error) {
	l, err := p.remote.PathLength(wireShape(shape))
	return l, localErr(err)
}

func (p *remoteProvider) PointAtLength(shape Shape, dist float64) (Point, error) {
	pt, err := p.remote.PointAtLength(wireShape(shape), dist)
	return Point{X: pt.X, Y: pt.Y}, localErr(err)
}

func (p *remoteProvider) GlobalTransform(shape Shape) (svg.Matrix, error) {
	m, err := p.remote.GlobalTransform(wireShape(shape))
	return svg.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}, localErr(err)
}

func (p *remoteProvider) PointInFill(shape Shape, x, y float64) (bool, error) {
	in, err := p.remote.PointInFill(wireShape(shape), x, y)
	return in, localErr(err)
}

func wireShape(shape Shape) geomplugin.Shape {
	return geomplugin.Shape{PathData: shape.PathData, FillRule: shape.FillRule}
}

func localErr(err error) error {
	if errors.Is(err, geomplugin.ErrUnsupported) {
		return ErrUnsupported
	}
	return err
}
