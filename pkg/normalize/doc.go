// Package normalize implements the denormalization engine: the transform
// from raw CMS items with opaque option and reference IDs to fully resolved
// domain objects.
//
// The engine is a pure function of its inputs plus the injected reference
// maps. Running it twice on the same raw items yields identical output, which
// the snapshot pipeline relies on. Unknown option IDs never fail a transform;
// each field resolves to its documented default (coverage type → Employer,
// yes/no flags → No, text direction → raw value passthrough) so that one
// unrecognized CMS value cannot abort an entire refresh.
//
// Coverage entries carry a computed supported-states sequence governed by
// three rules, applied per entry:
//
//  1. Confirmation not required → no supported states.
//  2. Confirmation required, no specific state required → every active state.
//  3. Confirmation required and a specific state required → the entry's own
//     linked state IDs, resolved and filtered to active states only.
//
// Legal documents are projected per requested document type: exactly one
// content field and its matching last-updated date are surfaced. Two policy
// generations coexist upstream and both are implemented here, selected
// explicitly via LegalDocPolicy.
package normalize
