// Package config provides configuration parsing for the vxml tools.
//
// The configuration is stored in vxml.yaml. Every field is optional; missing
// fields keep the defaults returned by New.
//
// # Configuration File Structure
//
//	render:
//	  escapeText: false
//	  maxDepth: 0
//	  tags:
//	    stripPrefixes: ["x:"]
//	    rename:
//	      FOO: Foo
//	    case: ""          # "", lower or upper
//	server:
//	  addr: ":8080"
//	  readTimeout: 5s
//	  writeTimeout: 10s
//	  maxBodyBytes: 1048576
//	metrics:
//	  enabled: true
//	  namespace: vxml
//	tracing:
//	  enabled: false
//	  tracerName: vxml
//	log:
//	  level: info         # debug, info, warn or error
//	  format: text        # text or json
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := render.NewRenderer(cfg.Render.RendererConfig())
package config
