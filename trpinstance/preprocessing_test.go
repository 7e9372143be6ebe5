package trpinstance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/trpinstance"
)

func intervention(id string, duration, start, end int) trpinstance.Node {
	return trpinstance.Node{
		ID:          id,
		Kind:        trpinstance.NodeIntervention,
		Duration:    duration,
		StartWindow: start,
		EndWindow:   end,
	}
}

func TestPreprocess_AmbiguousClassification(t *testing.T) {
	cases := []struct {
		name           string
		node           trpinstance.Node
		wantAmbiguous  bool
		wantStart      int
		wantEnd        int
	}{
		{
			name:          "fully morning stays unambiguous",
			node:          intervention("a", 60, 0, trpinstance.MidDay),
			wantAmbiguous: false,
			wantStart:     0,
			wantEnd:       trpinstance.MidDay,
		},
		{
			name:          "fully afternoon stays unambiguous",
			node:          intervention("b", 60, trpinstance.MidDay, trpinstance.EndDay),
			wantAmbiguous: false,
			wantStart:     trpinstance.MidDay,
			wantEnd:       trpinstance.EndDay,
		},
		{
			name:          "can only fit morning: window tightened",
			node:          intervention("c", 60, 0, trpinstance.MidDay+30),
			wantAmbiguous: false,
			wantStart:     0,
			wantEnd:       trpinstance.MidDay,
		},
		{
			name:          "can only fit afternoon: window tightened",
			node:          intervention("d", 60, trpinstance.MidDay-30, trpinstance.EndDay),
			wantAmbiguous: false,
			wantStart:     trpinstance.MidDay,
			wantEnd:       trpinstance.EndDay,
		},
		{
			name:          "fits either half: ambiguous",
			node:          intervention("e", 60, 0, trpinstance.EndDay),
			wantAmbiguous: true,
			wantStart:     0,
			wantEnd:       trpinstance.EndDay,
		},
		{
			name:          "long intervention never ambiguous",
			node:          intervention("f", trpinstance.LongIntervention, 0, trpinstance.EndDay),
			wantAmbiguous: false,
			wantStart:     0,
			wantEnd:       trpinstance.EndDay,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nodes := []trpinstance.Node{tc.node}
			trpinstance.Preprocess(nodes)
			require.Equal(t, tc.wantAmbiguous, nodes[0].IsAmbiguous)
			require.Equal(t, tc.wantStart, nodes[0].StartWindow)
			require.Equal(t, tc.wantEnd, nodes[0].EndWindow)
		})
	}
}

func TestNew_RejectsMismatchedMatrix(t *testing.T) {
	nodes := []trpinstance.Node{{ID: "depot", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay}}
	timeMatrix := [][]int{{0, 0}}
	distMatrix := [][]int{{0}}

	_, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v1", DepotIndex: 0}}, timeMatrix, distMatrix, nil, trpinstance.DefaultOptions())
	require.ErrorIs(t, err, trpinstance.ErrMalformed)
}

func TestNew_RejectsTooTightWindow(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "depot", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		intervention("tight", 120, 0, 60),
	}
	nodes[1].Index = 1
	timeMatrix := [][]int{{0, 10}, {10, 0}}
	distMatrix := [][]int{{0, 10}, {10, 0}}

	_, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v1", DepotIndex: 0}}, timeMatrix, distMatrix, nil, trpinstance.DefaultOptions())
	require.ErrorIs(t, err, trpinstance.ErrWindowTooTight)
}

func TestNew_DerivesEligibilityAndBigM(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "depot", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		intervention("a", 60, 0, trpinstance.EndDay),
	}
	nodes[1].Skills = map[string]int{"electrical": 1}
	nodes[1].Index = 1
	timeMatrix := [][]int{{0, 10}, {10, 0}}
	distMatrix := [][]int{{0, 20}, {20, 0}}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{
		{ID: "v1", DepotIndex: 0, Skills: map[string]int{"electrical": 1}},
		{ID: "v2", DepotIndex: 0, Skills: map[string]int{"plumbing": 1}},
	}, timeMatrix, distMatrix, nil, trpinstance.DefaultOptions())
	require.NoError(t, err)
	require.True(t, inst.Vehicles[0].IsEligible(1))
	require.False(t, inst.Vehicles[1].IsEligible(1))
	require.Greater(t, inst.M, 0.0)
	require.Equal(t, 1, inst.Similarity[0][1])
}
