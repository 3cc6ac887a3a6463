// Package middleware instruments rendering.
//
// A RenderFunc turns a tree into markup; a Middleware wraps one. The server
// and CLI build their render path as a chain:
//
//	r := render.NewRenderer(cfg.Render.RendererConfig())
//	fn := middleware.Chain(
//	    middleware.Logging(logger),
//	    middleware.OpenTelemetry(middleware.WithTracerName("vxml")),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	)(middleware.Renderer(r))
//
//	out, err := fn(ctx, tree)
//
// # Prometheus Metrics
//
// Prometheus records, under the configured namespace (default "vxml"):
//   - renders_total{status}: renders by outcome, "ok" or "error"
//   - render_duration_seconds: render latency
//   - render_output_bytes: size of successful output
//   - render_nodes: node count of successfully rendered trees
//   - render_errors_total{code}: failures by error code, such as X002
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # OpenTelemetry
//
// OpenTelemetry wraps each render in a "vxml.render" span. The span context
// is passed to the next RenderFunc, so nested work joins the trace.
package middleware
