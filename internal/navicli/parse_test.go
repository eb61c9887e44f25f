package navicli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

func TestParseStorageGroups(t *testing.T) {
	groups, err := parseStorageGroups(sgListOutput)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	ms := groups[0]
	assert.Equal(t, "microsoft", ms.Name)
	assert.Equal(t, "E6:4E:90:03:47:AB:E5:11:B2:4D:00:60:16:38:5A:70", ms.UID)
	assert.True(t, ms.Shareable)
	assert.Equal(t, []storagegroup.Mapping{{HLU: 1, ALU: 335}, {HLU: 2, ALU: 129}}, ms.Mappings)
	require.Len(t, ms.HBAPorts, 2)
	assert.Equal(t, storagegroup.HBAPort{
		UID:      "iqn.1991-05.com.microsoft:abc.example.com",
		SP:       storagegroup.SPA,
		PortID:   4,
		SPPort:   "A-4v0",
		HostName: "abc.example.com",
		HostIP:   "192.168.1.52",
	}, ms.HBAPorts[0])
	assert.Equal(t, storagegroup.SPB, ms.HBAPorts[1].SP)
	assert.Equal(t, storagegroup.PortISCSI, ms.HBAPorts[1].PortType())

	fc := groups[1]
	assert.Equal(t, "fc-hosts", fc.Name)
	assert.Empty(t, fc.Mappings)
	require.Len(t, fc.HBAPorts, 1)
	assert.Equal(t, storagegroup.PortFC, fc.HBAPorts[0].PortType())
	assert.Equal(t, "db01", fc.HBAPorts[0].HostName)

	empty := groups[2]
	assert.Equal(t, "empty", empty.Name)
	assert.False(t, empty.Shareable)
	assert.Empty(t, empty.HBAPorts)
	assert.Empty(t, empty.Mappings)
}

func TestParseStorageGroupsEmpty(t *testing.T) {
	groups, err := parseStorageGroups("")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestParseLUNNumber(t *testing.T) {
	n, ok := parseLUNNumber(lunListOutput)
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = parseLUNNumber("Name: x\n")
	assert.False(t, ok)
}

func TestParseFields(t *testing.T) {
	f := parseFields(getAgentOutput)
	assert.Equal(t, "K10", f["Name"])
	assert.Equal(t, "A", f["SP Identifier"])
	assert.Equal(t, "16384", f["SP Memory"])
}
