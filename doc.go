/*
Package spacetask tags the tasks of a process diagram with spatial roles and checks
them against each other and against a loaded environment.

A task is a movement (it goes to a destination), a binding (it attaches a participant)
or an unbinding (it releases one). Roles and their data live as typed extension
attributes on the task node, so the diagram stays the single source of truth.

# Concept

The Engine owns the environment catalog: a graph of physical places, the edges
between them and logical places defined by attribute conditions. An Editor wraps one
diagram and performs every per-node operation by node ID. Role changes run an advisory
pre-check over the process graph first; warnings are returned and reported through
hooks, but they never block the change.

# Usage

	eng := spacetask.New(spacetask.WithLogger(logger))

	res := eng.LoadEnvironmentFile(ctx, "campus.json")
	if !res.Success {
		log.Fatal(res.Error)
	}

	d, err := diagram.DecodeFile("delivery.yaml")
	if err != nil {
		log.Fatal(err)
	}

	ed := eng.Editor(d)
	change, err := ed.SetRole(ctx, "drop", domain.RoleUnbinding)
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range change.Warnings {
		fmt.Println(w.Message)
	}

# Notifications

Environment lifecycle changes are published on the Engine's bus under the topics of
package events, after the catalog has been replaced or cleared.
*/
package spacetask
