// Package sink delivers rendered artifacts to the user.
//
// Two display modes are supported. In file mode artifacts are written to
// disk with [WriteFile], which creates missing parent directories. In
// interactive mode the artifacts are also served by a [Server] on a local
// address until the caller's context is cancelled:
//
//	s := sink.NewServer(logger, sink.Artifact{Name: "graph.html", ContentType: sink.ContentType("html"), Data: page})
//	err := s.ListenAndServe(ctx, "127.0.0.1:8080", func(url string) { fmt.Println(url) })
//
// The server routes requests with chi and reports every request to the
// registered [observability.HTTPHooks].
//
// [observability.HTTPHooks]: github.com/matzehuels/netviz/pkg/observability.HTTPHooks
package sink
