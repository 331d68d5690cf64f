// Package config provides configuration parsing for vhook tooling.
//
// The configuration is stored in vhook.json or vhook.yaml at the project
// root. Both formats share one schema:
//
//	{
//	  "name": "counter",
//	  "dev": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vhook"
//	  },
//	  "debug": false
//	}
//
// The same file in YAML:
//
//	name: counter
//	dev:
//	  host: localhost
//	  port: 3000
//	render:
//	  pretty: true
//	metrics:
//	  enabled: true
//
// Missing fields are filled with defaults; Validate checks the result.
package config
