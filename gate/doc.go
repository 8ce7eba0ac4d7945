// Package gate provides a two-step authorization checkpoint.
// A user is first matched against the permissions of the profile it resolves to
// ("post:update", "category:*", "*:*"); if a resource is supplied and a policy is
// registered for its type, the policy then decides on that specific resource,
// typically by ownership. The package has no dependency on domain models.
//
// The user type is generic so the gate can be driven by a bare id, a full user
// struct, or the identity carried by a verified token:
//   - HybridGate[uint] for user id based checks
//   - HybridGate[auth.Actor] for token based checks
package gate
