package ioformat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/ioformat"
	"github.com/technician-routing/trp/trpinstance"
)

const twoJobDocument = `{
	"const_manager": {
		"km_cost": 1.5,
		"tech_cost": 10,
		"capacities_size": [1, 1, 1],
		"capacities_labels": ["WEIGHT", "JOU", "MA"]
	},
	"loc_manager": {
		"matrix": {
			"distance": [[0, 10, 10], [10, 0, 10], [10, 10, 0]],
			"time":     [[0, 10, 10], [10, 0, 10], [10, 10, 0]]
		}
	},
	"step_manager": {
		"warehouses": [
			{"node_id": 0, "ope_base": "BASE-1", "longitude": 1.0, "latitude": 2.0}
		],
		"interventions": [
			{"id": "job-A", "node_id": 1, "duration": 60, "start_window": 0, "end_window": 1440,
			 "skills": [["electrical"]], "quantities": {"WEIGHT": 2}, "longitude": 1.1, "latitude": 2.1},
			{"id": "job-B", "node_id": 2, "duration": 30, "start_window": 470, "end_window": 720,
			 "skills": [], "quantities": {}, "longitude": 1.2, "latitude": 2.2}
		]
	},
	"tech_manager": {
		"technicians": [
			{"id": "tech-1", "skills": ["electrical"], "capacities": {"WEIGHT": 5}, "ope_base": "BASE-1"},
			{"id": "tech-2", "skills": [], "capacities": {"WEIGHT": 5}, "ope_base": "BASE-1"}
		],
		"teams": {"fixed_teams": [["tech-1", "tech-2"]]}
	}
}`

func TestParse_BuildsInstanceFromFixedTeamDocument(t *testing.T) {
	inst, err := ioformat.Parse([]byte(twoJobDocument), ioformat.ParseOptions{})
	require.NoError(t, err)

	require.Len(t, inst.Nodes, 3)
	require.Equal(t, trpinstance.NodeDepot, inst.Nodes[0].Kind)
	require.Equal(t, "job-A", inst.Nodes[1].ID)
	require.Equal(t, 1, inst.Nodes[1].Skills["electrical"])

	require.Len(t, inst.Vehicles, 1)
	v := inst.Vehicles[0]
	require.ElementsMatch(t, []string{"tech-1", "tech-2"}, v.Technicians)
	require.Equal(t, 0, v.DepotIndex)
	require.Equal(t, 10, v.Capacities["WEIGHT"])
	require.Equal(t, 20.0, v.FixedCost)
	require.True(t, v.IsEligible(1))
	require.True(t, v.IsEligible(2))

	require.NotContains(t, inst.CapacityLabels, "JOU")
	require.Contains(t, inst.CapacityLabels, "WEIGHT")

	// job-B's window [470, 720] is exactly the morning shift and maps to
	// [0, MidDay].
	require.Equal(t, 0, inst.Nodes[2].StartWindow)
	require.Equal(t, trpinstance.MidDay, inst.Nodes[2].EndWindow)
}

func TestParse_UngroupedTechnicianBecomesSingletonVehicle(t *testing.T) {
	doc := []byte(`{
		"const_manager": {"km_cost": 1, "tech_cost": 0, "capacities_size": [], "capacities_labels": []},
		"loc_manager": {"matrix": {"distance": [[0, 1], [1, 0]], "time": [[0, 1], [1, 0]]}},
		"step_manager": {
			"warehouses": [{"node_id": 0, "ope_base": "BASE-1", "longitude": 0, "latitude": 0}],
			"interventions": [{"id": "job-A", "node_id": 1, "duration": 10, "start_window": 0, "end_window": 1440,
				"skills": [], "quantities": {}, "longitude": 0, "latitude": 0}]
		},
		"tech_manager": {
			"technicians": [{"id": "solo", "skills": [], "capacities": {}, "ope_base": "BASE-1"}],
			"teams": {"fixed_teams": []}
		}
	}`)

	inst, err := ioformat.Parse(doc, ioformat.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, inst.Vehicles, 1)
	require.Equal(t, []string{"solo"}, inst.Vehicles[0].Technicians)
}

func TestParse_MismatchedDepotInFixedTeamIsRejected(t *testing.T) {
	doc := []byte(`{
		"const_manager": {"km_cost": 1, "tech_cost": 0, "capacities_size": [], "capacities_labels": []},
		"loc_manager": {"matrix": {"distance": [[0, 1, 1], [1, 0, 1], [1, 1, 0]], "time": [[0, 1, 1], [1, 0, 1], [1, 1, 0]]}},
		"step_manager": {
			"warehouses": [
				{"node_id": 0, "ope_base": "BASE-1", "longitude": 0, "latitude": 0},
				{"node_id": 2, "ope_base": "BASE-2", "longitude": 0, "latitude": 0}
			],
			"interventions": [{"id": "job-A", "node_id": 1, "duration": 10, "start_window": 0, "end_window": 1440,
				"skills": [], "quantities": {}, "longitude": 0, "latitude": 0}]
		},
		"tech_manager": {
			"technicians": [
				{"id": "t1", "skills": [], "capacities": {}, "ope_base": "BASE-1"},
				{"id": "t2", "skills": [], "capacities": {}, "ope_base": "BASE-2"}
			],
			"teams": {"fixed_teams": [["t1", "t2"]]}
		}
	}`)

	_, err := ioformat.Parse(doc, ioformat.ParseOptions{})
	require.ErrorIs(t, err, trpinstance.ErrInconsistentDepot)
}

func TestParse_MalformedJSONIsRejected(t *testing.T) {
	_, err := ioformat.Parse([]byte(`{not valid json`), ioformat.ParseOptions{})
	require.ErrorIs(t, err, trpinstance.ErrMalformed)
}

func TestParse_MaxInterventionsKeepsOnlyTheFirstN(t *testing.T) {
	inst, err := ioformat.Parse([]byte(twoJobDocument), ioformat.ParseOptions{MaxInterventions: 1})
	require.NoError(t, err)

	require.Len(t, inst.Nodes, 2)
	require.Equal(t, trpinstance.NodeDepot, inst.Nodes[0].Kind)
	require.Equal(t, "job-A", inst.Nodes[1].ID)
	require.Equal(t, 10, inst.DistMatrix[0][1])
}
