package blog

//go:generate go run go.uber.org/mock/mockgen -package blog -destination store_mock_test.go github.com/solorad/blog-posts/server/pkg DocumentStore
