// Package server serves the launcher shell over HTTP.
//
// The router is chi. It exposes the rendered document, the page fragments
// and their assets, a JSON view of the document state, and endpoints that
// drive navigation and clicks so a thin front end (or a test) can operate
// the shell remotely:
//
//	GET  /                  rendered document
//	GET  /state             document state as JSON
//	POST /navigate/{page}   home, settings or mods
//	POST /click/{target}    dispatch a click, ?arg= passes an argument
//	GET  /pages/* /css/* /javascript/*
//	GET  /host              development host websocket (optional)
//	GET  /metrics           Prometheus scrape endpoint (optional)
//	GET  /healthz
//
// # Example Usage
//
//	srv := server.New(server.Config{
//	    Shell:    sh,
//	    Assets:   server.FileAssets(web.Static()),
//	    Gatherer: registry,
//	    Metrics:  metrics,
//	})
//	err := srv.Run(ctx, "localhost:7410")
package server
