// Package ids is the service layer shared by the HTTP and gRPC transports.
// It issues single ids and batches from the runtime's generator, decodes
// ids, and reports the node coordinates this instance runs with.
//
// Errors are wrapped so callers can match id.ErrClockRegression (retry
// later) and ErrInvalidCount (client error) with errors.Is.
package ids
