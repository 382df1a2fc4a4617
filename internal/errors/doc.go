// Package errors provides the coded error type used across rpg-inventory.
//
// Every layer returns *Error values so the transport adapters can map a failure to the
// right status without inspecting strings:
//
//	err := errors.NotFoundf("conversation %s not found", id)
//	err := errors.InvalidArgument("conversation ID is required").WithMeta("tool", name)
//
// Wrapping keeps the original code:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist conversation")
//	}
//
// # Batch validation
//
// A rejected command batch is a single InvalidArgument error whose message is the
// newline-joined list of problems. The individual messages stay available through
// BatchMessages:
//
//	if msgs := commands.Validate(batch); len(msgs) > 0 {
//	    return errors.InvalidBatch(msgs)
//	}
//
// # Configuration validation
//
// Component configs collect missing dependencies with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Store == nil {
//	    vb.RequiredField("Store")
//	}
//	return vb.Build()
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients turn a status back with FromGRPCError.
// Metadata travels as a google.protobuf.Struct status detail.
package errors
