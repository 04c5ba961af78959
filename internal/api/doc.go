// Package api is the wire contract between the GameKeeper client and server.
//
// It declares the request/response messages, the gRPC service descriptor for
// gamekeeper.v1.GameKeeper and a JSON codec registered under the "json"
// content-subtype. Both binaries import this package, which is what registers
// the codec; clients select it per call with
//
//	grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName))
package api
