package geomplugin

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ProviderPlugin implements the go-plugin Plugin interface for
// geometry providers.
type ProviderPlugin struct {
	plugin.Plugin
	Impl Provider
}

// Server returns an RPC server for this plugin.
func (p *ProviderPlugin) Server(*plugin.MuxBroker) (any, error) {
	return &ProviderRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ProviderPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ProviderRPCClient{client: c}, nil
}

// PointAtLengthArgs carries a point-at-length request.
type PointAtLengthArgs struct {
	Shape Shape
	Dist  float64
}

// PointInFillArgs carries a point-in-fill request.
type PointInFillArgs struct {
	Shape Shape
	X     float64
	Y     float64
}

// ProviderRPCServer is the RPC server implementation wrapping a
// concrete provider.
type ProviderRPCServer struct {
	Impl Provider
}

// BoundingBox implements the RPC method for bounding boxes.
func (s *ProviderRPCServer) BoundingBox(shape Shape, resp *Rect) error {
	r, err := s.Impl.BoundingBox(shape)
	if err != nil {
		return err
	}
	*resp = r
	return nil
}

// PathLength implements the RPC method for outline length.
func (s *ProviderRPCServer) PathLength(shape Shape, resp *float64) error {
	l, err := s.Impl.PathLength(shape)
	if err != nil {
		return err
	}
	*resp = l
	return nil
}

// PointAtLength implements the RPC method for outline sampling.
func (s *ProviderRPCServer) PointAtLength(args PointAtLengthArgs, resp *Point) error {
	pt, err := s.Impl.PointAtLength(args.Shape, args.Dist)
	if err != nil {
		return err
	}
	*resp = pt
	return nil
}

// GlobalTransform implements the RPC method for transform lookup.
func (s *ProviderRPCServer) GlobalTransform(shape Shape, resp *Matrix) error {
	m, err := s.Impl.GlobalTransform(shape)
	if err != nil {
		return err
	}
	*resp = m
	return nil
}

// PointInFill implements the RPC method for interior tests.
func (s *ProviderRPCServer) PointInFill(args PointInFillArgs, resp *bool) error {
	in, err := s.Impl.PointInFill(args.Shape, args.X, args.Y)
	if err != nil {
		return err
	}
	*resp = in
	return nil
}

// ProviderRPCClient is the RPC client implementation. Errors cross
// the wire as strings, so ErrUnsupported is re-identified by message
// on the way back.
type ProviderRPCClient struct {
	client *rpc.Client
}

// restore maps a wire error back onto ErrUnsupported when it matches.
func restore(err error) error {
	if err != nil && err.Error() == ErrUnsupported.Error() {
		return ErrUnsupported
	}
	return err
}

// BoundingBox calls the remote BoundingBox method.
func (c *ProviderRPCClient) BoundingBox(shape Shape) (Rect, error) {
	var resp Rect
	err := c.client.Call("Plugin.BoundingBox", shape, &resp)
	return resp, restore(err)
}

// PathLength calls the remote PathLength method.
func (c *ProviderRPCClient) PathLength(shape Shape) (float64, error) {
	var resp float64
	err := c.client.Call("Plugin.PathLength", shape, &resp)
	return resp, restore(err)
}

// PointAtLength calls the remote PointAtLength method.
func (c *ProviderRPCClient) PointAtLength(shape Shape, dist float64) (Point, error) {
	var resp Point
	err := c.client.Call("Plugin.PointAtLength", PointAtLengthArgs{Shape: shape, Dist: dist}, &resp)
	return resp, restore(err)
}

// GlobalTransform calls the remote GlobalTransform method.
func (c *ProviderRPCClient) GlobalTransform(shape Shape) (Matrix, error) {
	var resp Matrix
	err := c.client.Call("Plugin.GlobalTransform", shape, &resp)
	return resp, restore(err)
}

// PointInFill calls the remote PointInFill method.
func (c *ProviderRPCClient) PointInFill(shape Shape, x, y float64) (bool, error) {
	var resp bool
	err := c.client.Call("Plugin.PointInFill", PointInFillArgs{Shape: shape, X: x, Y: y}, &resp)
	return resp, restore(err)
}
