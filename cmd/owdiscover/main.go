// Command owdiscover discovers the devices on 1-Wire buses served by owserver.
//
// Usage:
//
//	owdiscover [--config file] [--log-level level] <command>
//
// Commands:
//
//	scan      Scan all configured bridges once and print the results
//	watch     Scan in the background and stream results over a websocket
//	bridges   List owserver instances announced via mDNS
//	log       View or summarize a scan event log
//	console   Interactive console
//
// Examples:
//
//	# One-shot scan of a bridge without a config file
//	owdiscover scan --address 192.168.1.20:4304
//
//	# Scan a simulated bus
//	owdiscover scan --fixture testdata/cellar.yaml
//
//	# Background discovery with the settings from a file
//	owdiscover watch --config /etc/owdiscover.yaml
//
//	# Show only failures of one scan
//	owdiscover log view --category error --scan 3f0c... scans.owlog
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
