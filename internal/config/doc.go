// Package config loads launcher configuration.
//
// Configuration lives in launcher.json, or launcher.yaml when no JSON file
// exists, next to the launcher. Every field has a default, and LAUNCHER_*
// environment variables override the file.
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "localhost", "port": 7410},
//	  "pages": {
//	    "source": "s3",
//	    "s3": {"bucket": "launcher-pages", "prefix": "v1", "region": "eu-central-1"}
//	  },
//	  "host": {
//	    "url": "ws://127.0.0.1:7411/host",
//	    "shape": "payload",
//	    "catalog": [{"name": "Kaiserreich", "path": "C:/mods/kr", "file": "kr.mod"}]
//	  },
//	  "theme": {"pollInterval": "5s"},
//	  "store": {"driver": "sqlite", "path": "launcher.sqlite"},
//	  "log": {"level": "debug", "format": "json"},
//	  "metrics": {"enabled": true, "namespace": "launcher"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if errors.Is(err, fs.ErrNotExist) {
//	    cfg = config.New()
//	} else if err != nil {
//	    return err
//	}
//	cfg.ApplyEnv(os.LookupEnv)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
