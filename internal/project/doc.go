// Package project owns the ordered two-level task hierarchy of a schedule.
//
// # Canonical sequence
//
// A Store keeps every task in one flat slice (the canonical sequence). The
// hierarchy is expressed only through contiguity: a subtask belongs to the
// nearest top-level task before it, and a parent's subtasks always form one
// unbroken run directly after it.
//
//	0  Design            (parent)
//	1    Wireframes      (subtask of 0)
//	2    Review          (subtask of 0)
//	3  Build             (parent, no subtasks)
//
// A parent plus its run is a block. Move and Sort treat blocks as atomic.
// Task.Children is derived from the runs after every structural change.
//
// # Visible projection
//
// The visible projection hides the subtasks of collapsed parents. It maps
// visible rows to actual positions and back, and is rebuilt from scratch
// whenever the sequence or a collapse flag changes.
//
// # Operations
//
// Every mutating operation returns a Change describing the affected rows and
// an error that is non-nil only for caller bugs (ErrOutOfRange,
// ErrStructural). Invalid field input (bad date text, bad duration) leaves
// the task unchanged and is reported through Change.Ignored.
//
// # File format
//
// Project files are JSON (or YAML for .yaml/.yml paths):
//
//	{
//	  "schema_version": 1,
//	  "name": "Website",
//	  "tasks": [
//	    {"name": "Design", "start_date": "01/01/2024", "end_date": "05/01/2024",
//	     "duration": 5, "dedication": 100, "collapsed": false},
//	    {"name": "Wireframes", "start_date": "01/01/2024", "end_date": "02/01/2024",
//	     "duration": 2, "dedication": 50, "is_subtask": true}
//	  ]
//	}
//
// Tasks are listed in canonical order; is_subtask encodes the hierarchy.
package project
