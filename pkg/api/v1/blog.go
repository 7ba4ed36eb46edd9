// Package v1 defines the blog.v1.BlogService gRPC API and its REST gateway.
package v1

import (
	"context"

	"github.com/solorad/blog-posts/server/pkg/models"
	"google.golang.org/grpc"
)

// Messages returned to clients for each error class.
const (
	MessageRequired = "Title and body are required"
	MessageNotFound = "Post not found"
	MessageInternal = "Internal Server Error"
	MessageBadBody  = "invalid request body"
)

const serviceName = "blog.v1.BlogService"

type CreateBlogRequest struct {
	Blog models.NewBlogPost `json:"blog"`
}

type CreateBlogResponse struct {
	Blog *models.BlogPost `json:"blog"`
}

type ListBlogsRequest struct{}

type ListBlogsResponse struct {
	Blogs []*models.BlogPost `json:"blogs"`
}

type ReadBlogRequest struct {
	ID string `json:"id"`
}

type ReadBlogResponse struct {
	Blog *models.BlogPost `json:"blog"`
}

type UpdateBlogRequest struct {
	ID   string               `json:"id"`
	Blog models.BlogPostPatch `json:"blog"`
}

type UpdateBlogResponse struct {
	Blog *models.BlogPost `json:"blog"`
}

type DeleteBlogRequest struct {
	ID string `json:"id"`
}

type DeleteBlogResponse struct{}

// BlogServiceClient is the client API for the blog service.
type BlogServiceClient interface {
	CreateBlog(ctx context.Context, in *CreateBlogRequest, opts ...grpc.CallOption) (*CreateBlogResponse, error)
	ListBlogs(ctx context.Context, in *ListBlogsRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error)
	ReadBlog(ctx context.Context, in *ReadBlogRequest, opts ...grpc.CallOption) (*ReadBlogResponse, error)
	UpdateBlog(ctx context.Context, in *UpdateBlogRequest, opts ...grpc.CallOption) (*UpdateBlogResponse, error)
	DeleteBlog(ctx context.Context, in *DeleteBlogRequest, opts ...grpc.CallOption) (*DeleteBlogResponse, error)
}

type blogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBlogServiceClient returns a client calling the blog service over cc.
func NewBlogServiceClient(cc grpc.ClientConnInterface) BlogServiceClient {
	return &blogServiceClient{cc}
}

func (c *blogServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

func (c *blogServiceClient) CreateBlog(ctx context.Context, in *CreateBlogRequest, opts ...grpc.CallOption) (*CreateBlogResponse, error) {
	out := new(CreateBlogResponse)
	if err := c.invoke(ctx, "CreateBlog", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blogServiceClient) ListBlogs(ctx context.Context, in *ListBlogsRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error) {
	out := new(ListBlogsResponse)
	if err := c.invoke(ctx, "ListBlogs", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blogServiceClient) ReadBlog(ctx context.Context, in *ReadBlogRequest, opts ...grpc.CallOption) (*ReadBlogResponse, error) {
	out := new(ReadBlogResponse)
	if err := c.invoke(ctx, "ReadBlog", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blogServiceClient) UpdateBlog(ctx context.Context, in *UpdateBlogRequest, opts ...grpc.CallOption) (*UpdateBlogResponse, error) {
	out := new(UpdateBlogResponse)
	if err := c.invoke(ctx, "UpdateBlog", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blogServiceClient) DeleteBlog(ctx context.Context, in *DeleteBlogRequest, opts ...grpc.CallOption) (*DeleteBlogResponse, error) {
	out := new(DeleteBlogResponse)
	if err := c.invoke(ctx, "DeleteBlog", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// BlogServiceServer is the server API for the blog service.
type BlogServiceServer interface {
	CreateBlog(context.Context, *CreateBlogRequest) (*CreateBlogResponse, error)
	ListBlogs(context.Context, *ListBlogsRequest) (*ListBlogsResponse, error)
	ReadBlog(context.Context, *ReadBlogRequest) (*ReadBlogResponse, error)
	UpdateBlog(context.Context, *UpdateBlogRequest) (*UpdateBlogResponse, error)
	DeleteBlog(context.Context, *DeleteBlogRequest) (*DeleteBlogResponse, error)
}

// RegisterBlogServiceServer registers srv as the blog service on s.
func RegisterBlogServiceServer(s grpc.ServiceRegistrar, srv BlogServiceServer) {
	s.RegisterService(&blogServiceDesc, srv)
}

// unaryHandler adapts a typed server method to a grpc.MethodDesc handler.
func unaryHandler(method string, newIn func() interface{}, call func(BlogServiceServer, context.Context, interface{}) (interface{}, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newIn()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BlogServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(BlogServiceServer), ctx, req)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var blogServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*BlogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CreateBlog",
			func() interface{} { return new(CreateBlogRequest) },
			func(s BlogServiceServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.CreateBlog(ctx, in.(*CreateBlogRequest))
			}),
		unaryHandler("ListBlogs",
			func() interface{} { return new(ListBlogsRequest) },
			func(s BlogServiceServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.ListBlogs(ctx, in.(*ListBlogsRequest))
			}),
		unaryHandler("ReadBlog",
			func() interface{} { return new(ReadBlogRequest) },
			func(s BlogServiceServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.ReadBlog(ctx, in.(*ReadBlogRequest))
			}),
		unaryHandler("UpdateBlog",
			func() interface{} { return new(UpdateBlogRequest) },
			func(s BlogServiceServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.UpdateBlog(ctx, in.(*UpdateBlogRequest))
			}),
		unaryHandler("DeleteBlog",
			func() interface{} { return new(DeleteBlogRequest) },
			func(s BlogServiceServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.DeleteBlog(ctx, in.(*DeleteBlogRequest))
			}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blog/v1/blog.proto",
}
