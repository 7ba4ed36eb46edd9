package v1

import (
	"context"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/solorad/blog-posts/server/pkg/log"
	"github.com/solorad/blog-posts/server/pkg/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	patternBlogs = runtime.MustPattern(runtime.NewPattern(1, []int{2, 0}, []string{"blogs"}, "", runtime.AssumeColonVerbOpt(true)))

	patternBlog = runtime.MustPattern(runtime.NewPattern(1, []int{2, 0, 1, 0, 4, 1, 5, 1}, []string{"blogs", "id"}, "", runtime.AssumeColonVerbOpt(true)))
)

type errorBody struct {
	Error string `json:"error"`
}

func init() {
	runtime.OtherErrorHandler = routingError
}

// routingError answers requests no route matches, such as an unknown path
// or method, with the same JSON error body as the handlers.
func routingError(w http.ResponseWriter, _ *http.Request, msg string, code int) {
	writeError(w, &runtime.JSONBuiltin{}, code, msg)
}

// NewServeMux returns a gateway mux that reads and writes plain JSON.
func NewServeMux(opts ...runtime.ServeMuxOption) *runtime.ServeMux {
	opts = append([]runtime.ServeMuxOption{
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONBuiltin{}),
	}, opts...)
	return runtime.NewServeMux(opts...)
}

// RegisterBlogServiceHandlerFromEndpoint is same as RegisterBlogServiceHandler but
// automatically dials to "endpoint" and closes the connection when "ctx" gets done.
func RegisterBlogServiceHandlerFromEndpoint(ctx context.Context, mux *runtime.ServeMux, endpoint string, opts []grpc.DialOption) (err error) {
	conn, err := grpc.DialContext(ctx, endpoint, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if cerr := conn.Close(); cerr != nil {
				log.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
			}
			return
		}
		go func() {
			<-ctx.Done()
			if cerr := conn.Close(); cerr != nil {
				log.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
			}
		}()
	}()

	return RegisterBlogServiceHandler(ctx, mux, conn)
}

// RegisterBlogServiceHandler registers the http handlers for the blog service
// to "mux". The handlers forward requests to the grpc endpoint over "conn".
func RegisterBlogServiceHandler(ctx context.Context, mux *runtime.ServeMux, conn grpc.ClientConnInterface) error {
	return RegisterBlogServiceHandlerClient(ctx, mux, NewBlogServiceClient(conn))
}

// RegisterBlogServiceHandlerClient registers the http handlers for the blog
// service to "mux":
//
//	POST   /blogs       CreateBlog  201
//	GET    /blogs       ListBlogs   200
//	GET    /blogs/{id}  ReadBlog    200
//	PUT    /blogs/{id}  UpdateBlog  200
//	DELETE /blogs/{id}  DeleteBlog  204
//
// POST and PUT bodies must carry a non-empty title and body.
func RegisterBlogServiceHandlerClient(ctx context.Context, mux *runtime.ServeMux, client BlogServiceClient) error {
	mux.Handle(http.MethodPost, patternBlogs, func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		rctx, cancel, inbound, outbound, ok := prepare(w, req, mux)
		if !ok {
			return
		}
		defer cancel()

		var in CreateBlogRequest
		if err := decodeBody(inbound, req, &in.Blog); err != nil {
			writeStatus(w, outbound, err)
			return
		}
		if err := models.Validate(in.Blog.Title, in.Blog.Body); err != nil {
			writeError(w, outbound, http.StatusBadRequest, MessageRequired)
			return
		}
		resp, err := client.CreateBlog(rctx, &in)
		if err != nil {
			writeStatus(w, outbound, err)
			return
		}
		forwardResponse(w, outbound, http.StatusCreated, resp.Blog)
	})

	mux.Handle(http.MethodGet, patternBlogs, func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		rctx, cancel, _, outbound, ok := prepare(w, req, mux)
		if !ok {
			return
		}
		defer cancel()

		resp, err := client.ListBlogs(rctx, &ListBlogsRequest{})
		if err != nil {
			writeStatus(w, outbound, err)
			return
		}
		blogs := resp.Blogs
		if blogs == nil {
			blogs = []*models.BlogPost{}
		}
		forwardResponse(w, outbound, http.StatusOK, blogs)
	})

	mux.Handle(http.MethodGet, patternBlog, func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		rctx, cancel, _, outbound, ok := prepare(w, req, mux)
		if !ok {
			return
		}
		defer cancel()

		resp, err := client.ReadBlog(rctx, &ReadBlogRequest{ID: pathParams["id"]})
		if err != nil {
			writeStatus(w, outbound, err)
			return
		}
		forwardResponse(w, outbound, http.StatusOK, resp.Blog)
	})

	mux.Handle(http.MethodPut, patternBlog, func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		rctx, cancel, inbound, outbound, ok := prepare(w, req, mux)
		if !ok {
			return
		}
		defer cancel()

		in := UpdateBlogRequest{ID: pathParams["id"]}
		if err := decodeBody(inbound, req, &in.Blog); err != nil {
			writeStatus(w, outbound, err)
			return
		}
		if err := models.ValidatePatch(in.Blog); err != nil {
			writeError(w, outbound, http.StatusBadRequest, MessageRequired)
			return
		}
		resp, err := client.UpdateBlog(rctx, &in)
		if err != nil {
			writeStatus(w, outbound, err)
			return
		}
		forwardResponse(w, outbound, http.StatusOK, resp.Blog)
	})

	mux.Handle(http.MethodDelete, patternBlog, func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		rctx, cancel, _, outbound, ok := prepare(w, req, mux)
		if !ok {
			return
		}
		defer cancel()

		if _, err := client.DeleteBlog(rctx, &DeleteBlogRequest{ID: pathParams["id"]}); err != nil {
			writeStatus(w, outbound, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return nil
}

// prepare picks the marshalers for req and builds the outgoing gRPC context.
// It writes the error response itself and reports false on failure.
func prepare(w http.ResponseWriter, req *http.Request, mux *runtime.ServeMux) (context.Context, context.CancelFunc, runtime.Marshaler, runtime.Marshaler, bool) {
	ctx, cancel := context.WithCancel(req.Context())
	inbound, outbound := runtime.MarshalerForRequest(mux, req)
	rctx, err := runtime.AnnotateContext(ctx, mux, req)
	if err != nil {
		cancel()
		writeStatus(w, outbound, err)
		return nil, nil, nil, nil, false
	}
	return rctx, cancel, inbound, outbound, true
}

// decodeBody reads exactly one JSON value into v. An empty body leaves v
// untouched; trailing data after the value is rejected.
func decodeBody(marshaler runtime.Marshaler, req *http.Request, v interface{}) error {
	if req.Body == nil {
		return nil
	}
	dec := marshaler.NewDecoder(req.Body)
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		log.V(1).Infof("Rejected request body: %v", err)
		return status.Error(codes.InvalidArgument, MessageBadBody)
	}
	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		log.V(1).Infof("Rejected request body: trailing data after the JSON value")
		return status.Error(codes.InvalidArgument, MessageBadBody)
	}
	return nil
}

func forwardResponse(w http.ResponseWriter, marshaler runtime.Marshaler, code int, v interface{}) {
	buf, err := marshaler.Marshal(v)
	if err != nil {
		log.Errorf("Failed to marshal response: %v", err)
		writeError(w, marshaler, http.StatusInternalServerError, MessageInternal)
		return
	}
	w.Header().Set("Content-Type", marshaler.ContentType())
	w.WriteHeader(code)
	if _, err := w.Write(buf); err != nil {
		log.Warningf("Failed to write response: %v", err)
	}
}

// writeStatus maps a gRPC status to its HTTP code. Server side failures are
// reported with the generic message only.
func writeStatus(w http.ResponseWriter, marshaler runtime.Marshaler, err error) {
	s := status.Convert(err)
	code := runtime.HTTPStatusFromCode(s.Code())
	msg := s.Message()
	if code >= http.StatusInternalServerError {
		log.Errorf("Request failed: %v", err)
		code = http.StatusInternalServerError
		msg = MessageInternal
	}
	writeError(w, marshaler, code, msg)
}

func writeError(w http.ResponseWriter, marshaler runtime.Marshaler, code int, msg string) {
	buf, err := marshaler.Marshal(errorBody{Error: msg})
	if err != nil {
		log.Errorf("Failed to marshal error message %q: %v", msg, err)
		buf = []byte(`{"error":"` + MessageInternal + `"}`)
	}
	w.Header().Set("Content-Type", marshaler.ContentType())
	w.WriteHeader(code)
	if _, err := w.Write(buf); err != nil {
		log.Warningf("Failed to write response: %v", err)
	}
}
