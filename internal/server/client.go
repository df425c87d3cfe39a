package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls ShelfKeyService with the typed messages of this package.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return err
	}
	if err := fromStruct(out, resp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) ComputeKeys(ctx context.Context, req ComputeKeysRequest, opts ...grpc.CallOption) (*ComputeKeysResponse, error) {
	var resp ComputeKeysResponse
	if err := c.invoke(ctx, MethodComputeKeys, req, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) IndexRecord(ctx context.Context, req IndexRecordRequest, opts ...grpc.CallOption) (*IndexRecordResponse, error) {
	var resp IndexRecordResponse
	if err := c.invoke(ctx, MethodIndexRecord, req, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveRecord(ctx context.Context, req RemoveRecordRequest, opts ...grpc.CallOption) (*RemoveRecordResponse, error) {
	var resp RemoveRecordResponse
	if err := c.invoke(ctx, MethodRemoveRecord, req, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Browse(ctx context.Context, req BrowseRequest, opts ...grpc.CallOption) (*BrowseResponse, error) {
	var resp BrowseResponse
	if err := c.invoke(ctx, MethodBrowse, req, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Health(ctx context.Context, opts ...grpc.CallOption) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.invoke(ctx, MethodHealth, struct{}{}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Stats(ctx context.Context, opts ...grpc.CallOption) (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.invoke(ctx, MethodStats, struct{}{}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}
