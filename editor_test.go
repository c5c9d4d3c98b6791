package spacetask_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/observability"
)

const deliveryFile = "pkg/diagram/testdata/delivery.yaml"

func openDelivery(t *testing.T, opts ...spacetask.Option) (*spacetask.Engine, *spacetask.Editor) {
	t.Helper()
	d, err := diagram.DecodeFile(deliveryFile)
	require.NoError(t, err)
	eng := spacetask.New(opts...)
	return eng, eng.Editor(d)
}

func TestEditor_Roles(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads normalized roles", func(t *testing.T) {
		_, ed := openDelivery(t)

		for id, want := range map[string]domain.Role{
			"pick": domain.RoleBinding,
			"move": domain.RoleMovement,
			"drop": domain.RoleUnbinding,
			"dock": domain.RoleNone,
		} {
			got, err := ed.Role(id)
			require.NoError(t, err)
			assert.Equal(t, want, got, id)
		}
	})

	t.Run("Unknown node", func(t *testing.T) {
		_, ed := openDelivery(t)
		_, err := ed.Role("ghost")
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
		_, err = ed.SetRole(ctx, "ghost", domain.RoleMovement)
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("Unknown role", func(t *testing.T) {
		_, ed := openDelivery(t)
		_, err := ed.SetRole(ctx, "dock", "teleport")
		assert.ErrorIs(t, err, domain.ErrUnknownRole)
	})

	t.Run("Warnings are reported and the change is committed", func(t *testing.T) {
		metrics := observability.NewMetrics()
		_, ed := openDelivery(t, spacetask.WithHooks(metrics.Hooks()))

		change, err := ed.SetRole(ctx, "dock", domain.RoleUnbinding)
		require.NoError(t, err)
		assert.True(t, change.Changed)
		require.Len(t, change.Warnings, 1)
		assert.Equal(t, domain.RuleUpstreamBinding, change.Warnings[0].Rule)

		role, _ := ed.Role("dock")
		assert.Equal(t, domain.RoleUnbinding, role)

		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RoleChanges.WithLabelValues("unassigned", "unbinding")))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Warnings.WithLabelValues(domain.RuleUpstreamBinding)))
	})

	t.Run("Leaving binding warns about downstream unbinding", func(t *testing.T) {
		var events []*domain.RoleEvent
		_, ed := openDelivery(t, spacetask.WithHooks(domain.Hooks{
			OnRoleChange: func(_ context.Context, e *domain.RoleEvent) { events = append(events, e) },
		}))

		res, err := ed.QuickCheck("pick", domain.RoleMovement)
		require.NoError(t, err)
		assert.True(t, res.HasWarnings)
		assert.Equal(t, []string{"drop"}, res.Warnings[0].Related)

		w, ok, err := ed.FullCheck("pick", domain.RoleMovement)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.RuleDownstreamUnbinding, w.Rule)

		change, err := ed.SetRole(ctx, "pick", domain.RoleMovement)
		require.NoError(t, err)
		assert.Equal(t, []domain.Kind{domain.KindDestination}, change.Provisioned)

		dest, _ := ed.Destination("pick")
		assert.Equal(t, domain.DefaultDestination, dest)

		require.Len(t, events, 1)
		assert.Equal(t, "delivery", events[0].DiagramID)
		assert.Equal(t, domain.RoleBinding, events[0].Change.From)
	})

	t.Run("Same role is silent", func(t *testing.T) {
		calls := 0
		_, ed := openDelivery(t, spacetask.WithHooks(domain.Hooks{
			OnRoleChange: func(context.Context, *domain.RoleEvent) { calls++ },
		}))

		change, err := ed.SetRole(ctx, "drop", domain.RoleUnbinding)
		require.NoError(t, err)
		assert.False(t, change.Changed)
		assert.Zero(t, calls)
	})

	t.Run("Clear keeps the destination", func(t *testing.T) {
		_, ed := openDelivery(t)

		change, err := ed.ClearRole(ctx, "move")
		require.NoError(t, err)
		assert.True(t, change.Changed)

		role, _ := ed.Role("move")
		assert.Equal(t, domain.RoleNone, role)
		dest, _ := ed.Destination("move")
		assert.Equal(t, "Lab A", dest)
	})

	t.Run("Clearing a binding warns about the orphaned unbinding", func(t *testing.T) {
		var warned []domain.Warning
		_, ed := openDelivery(t, spacetask.WithHooks(domain.Hooks{
			OnWarning: func(_ context.Context, e *domain.WarningEvent) { warned = append(warned, e.Warning) },
		}))

		res, err := ed.QuickCheck("pick", domain.RoleNone)
		require.NoError(t, err)
		require.Equal(t, 1, res.WarningCount)

		change, err := ed.ClearRole(ctx, "pick")
		require.NoError(t, err)
		assert.True(t, change.Changed)
		require.Len(t, change.Warnings, 1)
		assert.Equal(t, domain.RuleDownstreamUnbinding, change.Warnings[0].Rule)
		assert.Equal(t, change.Warnings, warned)

		role, _ := ed.Role("pick")
		assert.Equal(t, domain.RoleNone, role)
	})

	t.Run("Custom placeholder", func(t *testing.T) {
		_, ed := openDelivery(t, spacetask.WithDefaultDestination("TBD"))
		_, err := ed.SetRole(ctx, "dock", domain.RoleMovement)
		require.NoError(t, err)
		dest, _ := ed.Destination("dock")
		assert.Equal(t, "TBD", dest)
	})
}

func TestEditor_Binding(t *testing.T) {
	_, ed := openDelivery(t)

	participants, err := ed.Participants("pick")
	require.NoError(t, err)
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"station", "desk"}, ids)

	require.NoError(t, ed.SetBinding("pick", "station"))
	got, err := ed.Binding("pick")
	require.NoError(t, err)
	assert.Equal(t, "station", got)

	assert.Equal(t, []diagram.BindingDetails{{FlowID: "m1", Participant1: "robot", Participant2: "station"}}, ed.Bindings())
}

func TestEditor_Assignments(t *testing.T) {
	_, ed := openDelivery(t)

	require.NoError(t, ed.AddAssignment("move", "p1.temp = 20", "p2.seats = 3"))
	list, err := ed.Assignments("move")
	require.NoError(t, err)
	assert.Equal(t, []domain.Assignment{{Condition: "p1.temp = 20", Value: "p2.seats = 3"}}, list)
	count, err := ed.AssignmentCount("move")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	_, err = ed.AssignmentCount("nowhere")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	ok, err := ed.UpdateAssignment("move", 0, "p1.temp > 25", "p2.seats = 0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ed.UpdateAssignment("move", 4, "x", "y")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ed.RemoveAssignment("move", 0)
	require.NoError(t, err)
	assert.True(t, ok)

	list, _ = ed.Assignments("move")
	assert.Empty(t, list)

	require.NoError(t, ed.AddAssignment("move", "a.b = c", ""))
	require.NoError(t, ed.ClearAssignments("move"))
	list, _ = ed.Assignments("move")
	assert.Empty(t, list)
}

func TestEditor_ValidateAssignment(t *testing.T) {
	eng, ed := openDelivery(t)

	res := ed.ValidateAssignment("p9.temp = 3", "")
	assert.True(t, res.Valid, "places are not checked without an environment")

	require.True(t, eng.LoadEnvironmentFile(context.Background(), campusFile).Success)

	res = ed.ValidateAssignment("p9.temp = 3", "not an expression")
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 2)
}

func TestEditor_Audit(t *testing.T) {
	ctx := context.Background()
	eng, ed := openDelivery(t)
	require.True(t, eng.LoadEnvironmentFile(ctx, campusFile).Success)

	assert.Empty(t, ed.Audit(), "the delivery diagram is consistent")

	_, err := ed.SetDestination("move", "Nowhere")
	require.NoError(t, err)
	require.NoError(t, ed.AddAssignment("drop", "p9.temp = 3", ""))
	_, err = ed.SetRole(ctx, "dock", domain.RoleUnbinding)
	require.NoError(t, err)

	warnings := ed.Audit()
	rules := make([]string, 0, len(warnings))
	for _, w := range warnings {
		rules = append(rules, w.NodeID+":"+w.Rule)
	}
	assert.Equal(t, []string{
		"move:" + domain.RuleUnknownDestination,
		"drop:" + domain.RuleInvalidAssignment,
		"dock:" + domain.RuleUpstreamBinding,
	}, rules)

	t.Run("Logical places are valid destinations", func(t *testing.T) {
		_, err := ed.SetDestination("move", "big-rooms")
		require.NoError(t, err)
		for _, w := range ed.Audit() {
			assert.NotEqual(t, domain.RuleUnknownDestination, w.Rule)
		}
	})

	t.Run("Placeholder is not reported", func(t *testing.T) {
		_, err := ed.SetDestination("move", "")
		require.NoError(t, err)
		for _, w := range ed.Audit() {
			assert.NotEqual(t, domain.RuleUnknownDestination, w.Rule)
		}
	})
}
