// Package config loads mkdf settings.
//
// Settings come from an optional mkdf.yml and from MKDF_ environment
// variables, which win over the file:
//
//	ports:
//	  backend: 8000
//	  traefik_dashboard: 8081
//	network:
//	  subnet: 172.28.0.0/16
//	web:
//	  host: 127.0.0.1
//	  port_start: 9500
//
// Command-line flags are applied on top by the commands package.
package config
