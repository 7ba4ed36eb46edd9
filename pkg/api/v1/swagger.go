package v1

import (
	"fmt"
	"os"
	"path"
	"time"

	assetfs "github.com/elazarl/go-bindata-assetfs"
)

const swaggerDir = "swagger"

var swaggerBuilt = time.Date(2020, time.February, 4, 0, 0, 0, 0, time.UTC)

var swaggerAssets = map[string][]byte{
	swaggerDir + "/blog.swagger.json": []byte(blogSwaggerJSON),
}

// Asset loads and returns the asset for the given name.
func Asset(name string) ([]byte, error) {
	if b, ok := swaggerAssets[name]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("Asset %s not found: %w", name, os.ErrNotExist)
}

// AssetDir returns the file names below a certain directory.
func AssetDir(name string) ([]string, error) {
	if name != swaggerDir {
		return nil, fmt.Errorf("Dir %s not found: %w", name, os.ErrNotExist)
	}
	names := make([]string, 0, len(swaggerAssets))
	for asset := range swaggerAssets {
		names = append(names, path.Base(asset))
	}
	return names, nil
}

// AssetInfo returns file info of the named asset.
func AssetInfo(name string) (os.FileInfo, error) {
	b, ok := swaggerAssets[name]
	if !ok {
		return nil, fmt.Errorf("AssetInfo %s not found: %w", name, os.ErrNotExist)
	}
	return assetInfo{name: path.Base(name), size: int64(len(b))}, nil
}

type assetInfo struct {
	name string
	size int64
}

func (fi assetInfo) Name() string       { return fi.name }
func (fi assetInfo) Size() int64        { return fi.size }
func (fi assetInfo) Mode() os.FileMode  { return 0444 }
func (fi assetInfo) ModTime() time.Time { return swaggerBuilt }
func (fi assetInfo) IsDir() bool        { return false }
func (fi assetInfo) Sys() interface{}   { return nil }

// SwaggerFS serves the OpenAPI description of the REST gateway. Mount it
// under /swagger/ with the prefix stripped.
func SwaggerFS() *assetfs.AssetFS {
	return &assetfs.AssetFS{
		Asset:     Asset,
		AssetDir:  AssetDir,
		AssetInfo: AssetInfo,
		Prefix:    swaggerDir,
	}
}

const blogSwaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "blog/v1/blog.proto",
    "version": "1.0"
  },
  "schemes": ["http"],
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/blogs": {
      "get": {
        "operationId": "ListBlogs",
        "responses": {
          "200": {"description": "All blog posts.", "schema": {"type": "array", "items": {"$ref": "#/definitions/BlogPost"}}},
          "500": {"description": "Storage error.", "schema": {"$ref": "#/definitions/Error"}}
        }
      },
      "post": {
        "operationId": "CreateBlog",
        "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlogPostInput"}}],
        "responses": {
          "201": {"description": "The created post.", "schema": {"$ref": "#/definitions/BlogPost"}},
          "400": {"description": "Title or body missing.", "schema": {"$ref": "#/definitions/Error"}},
          "500": {"description": "Storage error.", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    },
    "/blogs/{id}": {
      "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
      "get": {
        "operationId": "ReadBlog",
        "responses": {
          "200": {"description": "The post.", "schema": {"$ref": "#/definitions/BlogPost"}},
          "404": {"description": "No such post.", "schema": {"$ref": "#/definitions/Error"}},
          "500": {"description": "Storage error.", "schema": {"$ref": "#/definitions/Error"}}
        }
      },
      "put": {
        "operationId": "UpdateBlog",
        "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlogPostInput"}}],
        "responses": {
          "200": {"description": "The updated post.", "schema": {"$ref": "#/definitions/BlogPost"}},
          "400": {"description": "Title or body missing.", "schema": {"$ref": "#/definitions/Error"}},
          "404": {"description": "No such post.", "schema": {"$ref": "#/definitions/Error"}},
          "500": {"description": "Storage error.", "schema": {"$ref": "#/definitions/Error"}}
        }
      },
      "delete": {
        "operationId": "DeleteBlog",
        "responses": {
          "204": {"description": "Deleted."},
          "404": {"description": "No such post.", "schema": {"$ref": "#/definitions/Error"}},
          "500": {"description": "Storage error.", "schema": {"$ref": "#/definitions/Error"}}
        }
      }
    }
  },
  "definitions": {
    "BlogPostInput": {
      "type": "object",
      "required": ["title", "body"],
      "properties": {
        "title": {"type": "string"},
        "body": {"type": "string"},
        "author": {"type": "string"}
      }
    },
    "BlogPost": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "title": {"type": "string"},
        "body": {"type": "string"},
        "author": {"type": "string"},
        "createdAt": {"type": "string", "format": "date-time"}
      }
    },
    "Error": {
      "type": "object",
      "properties": {
        "error": {"type": "string"}
      }
    }
  }
}
`
