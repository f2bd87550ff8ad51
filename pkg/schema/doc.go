// Package schema defines the closed descriptor set the fixture generator
// understands, the ordered model schemas built from it, and the instance tree
// returned by synthesis. Descriptors are produced once by a loader (see
// pkg/openapi) or by hand, and are treated as read-only afterwards; the
// generator performs a structural switch over Kind instead of inspecting Go
// types at generation time.
//
// Self-referential models are built in two phases:
//
//	node := schema.Declare("Node")
//	_ = node.Define(
//		schema.NewField("value", schema.Integer()),
//		schema.NewField("child", schema.NewOptional(schema.ModelOf(node))),
//	)
package schema
