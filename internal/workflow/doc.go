// Package workflow orchestrates one fixture-load run.
//
// The sequence is strictly linear: resolve the entity manager session,
// optionally confirm the destructive purge with the operator, optionally
// bind a shard, discover fixture sources, guard against an empty result,
// select the purge mode, and hand off to the executor. All collaborators
// come in through Deps so the workflow itself owns no I/O beyond the
// operator-facing progress stream.
package workflow
