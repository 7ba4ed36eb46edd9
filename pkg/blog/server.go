package blog

import (
	"context"

	"github.com/juju/clock"
	"github.com/solorad/blog-posts/server/pkg"
	v1 "github.com/solorad/blog-posts/server/pkg/api/v1"
	"github.com/solorad/blog-posts/server/pkg/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server implements v1.BlogServiceServer on top of BlogPostService.
type Server struct {
	service *BlogPostService
}

// NewBlogServiceServer returns the gRPC blog service persisting to store.
func NewBlogServiceServer(store pkg.DocumentStore) *Server {
	return NewServer(NewBlogPostService(store, clock.WallClock))
}

// NewServer returns the gRPC blog service backed by service.
func NewServer(service *BlogPostService) *Server {
	return &Server{service: service}
}

func (s *Server) CreateBlog(ctx context.Context, req *v1.CreateBlogRequest) (*v1.CreateBlogResponse, error) {
	post, err := s.service.Create(ctx, req.Blog)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.CreateBlogResponse{Blog: post}, nil
}

func (s *Server) ListBlogs(ctx context.Context, _ *v1.ListBlogsRequest) (*v1.ListBlogsResponse, error) {
	posts, err := s.service.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.ListBlogsResponse{Blogs: posts}, nil
}

func (s *Server) ReadBlog(ctx context.Context, req *v1.ReadBlogRequest) (*v1.ReadBlogResponse, error) {
	post, err := s.service.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.ReadBlogResponse{Blog: post}, nil
}

func (s *Server) UpdateBlog(ctx context.Context, req *v1.UpdateBlogRequest) (*v1.UpdateBlogResponse, error) {
	post, err := s.service.Update(ctx, req.ID, req.Blog)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.UpdateBlogResponse{Blog: post}, nil
}

func (s *Server) DeleteBlog(ctx context.Context, req *v1.DeleteBlogRequest) (*v1.DeleteBlogResponse, error) {
	if err := s.service.Delete(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &v1.DeleteBlogResponse{}, nil
}

// toStatus converts a service error into the gRPC status sent to clients.
// Anything that is not a validation or lookup failure is logged and hidden
// behind the generic internal message.
func toStatus(err error) error {
	switch {
	case IsStorage(err):
	case IsValidation(err):
		return status.Error(codes.InvalidArgument, v1.MessageRequired)
	case IsNotFound(err):
		return status.Error(codes.NotFound, v1.MessageNotFound)
	}
	log.Errorf("%v", err)
	return status.Error(codes.Internal, v1.MessageInternal)
}
