// Package owserver implements a client for the owserver network protocol of
// the OWFS project.
//
// owserver exposes a 1-Wire bus as a file system tree over TCP (default port
// 4304). Every request and response starts with a 24-byte header of six
// big-endian int32 values:
//
//	request:  version | payload length | message type | control flags | size | offset
//	response: version | payload length | return value | control flags | size | offset
//
// The request payload is the NUL terminated path. A response with payload
// length -1 is a keep-alive sent while the server is still working and carries
// no data. A negative return value is an error code.
//
// When the client sets the persistence flag and the server echoes it, the
// connection is reused for the next request; otherwise it is closed.
package owserver
