package job

import "sync/atomic"

// Fn is the unit of work a Job executes. ctx is whatever the submitter
// closed over or passed through; it is opaque to the pool.
type Fn func(ctx any)

// Job is a schedulable unit of work plus an atomic completion counter.
// The counter starts at 1 (representing the job itself) and is
// incremented once per child job created against it as parent before
// that child is submitted. Completion of a leaf job, or of the last
// outstanding child of a parent, decrements the counter; reaching zero
// propagates the same decrement to the parent, so a parent is complete
// only once it and every descendant has finished.
type Job struct {
	fn         Fn
	ctx        any
	parent     *Job
	unfinished atomic.Int32
}

// NewJob creates a leaf job with no parent to track against.
func NewJob(fn Fn, ctx any) *Job {
	j := &Job{fn: fn, ctx: ctx}
	j.unfinished.Store(1)
	return j
}

// NewChildJob creates a job whose completion also counts toward parent's.
// The increment happens here, before the child can possibly run, so a
// child that completes on another worker before the caller finishes
// spawning siblings can never make parent appear complete early.
func NewChildJob(fn Fn, ctx any, parent *Job) *Job {
	parent.unfinished.Add(1)
	j := &Job{fn: fn, ctx: ctx, parent: parent}
	j.unfinished.Store(1)
	return j
}

// NewRootJob creates a counter-only job with no work of its own, used by
// an orchestrator to track a batch of children submitted under it. Call
// Release once all children have been created.
func NewRootJob() *Job {
	j := &Job{}
	j.unfinished.Store(1)
	return j
}

// Release retires a root job's own unit of work, per NewRootJob.
func (j *Job) Release() { j.finish() }

// run executes fn, if any, then retires this job's own unit of work.
func (j *Job) run() {
	if j.fn != nil {
		j.fn(j.ctx)
	}
	j.finish()
}

func (j *Job) finish() {
	if j.unfinished.Add(-1) == 0 && j.parent != nil {
		j.parent.finish()
	}
}

// IsComplete reports whether j and every descendant job created against
// it has finished running. The underlying load is acquire-ordered with
// respect to the releasing decrement in finish, so a true result
// happens-after all work the job represents.
func (j *Job) IsComplete() bool {
	return j.unfinished.Load() == 0
}
