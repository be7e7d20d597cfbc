// Package simbus simulates an owserver bus from a YAML topology.
//
// A topology lists devices by id and type. Couplers (DS2409) carry their
// branch contents under main and aux, and either branch can be marked as
// failing to exercise partial discovery:
//
//	devices:
//	  - id: 10.67C6697351FF
//	    type: DS18S20
//	  - id: 26.0000000000BB
//	    type: DS2438
//	    pages:
//	      3: "F1"
//	    associated: [28.0000000000DD]
//	  - id: 1F.0000000000CC
//	    type: DS2409
//	    main:
//	      - id: 28.0000000000DD
//	        type: DS18B20
//	    fail_aux: true
//
// A Bus answers directory listings and property reads the same way the
// owserver client does, so it can stand in for a real bridge.
package simbus
