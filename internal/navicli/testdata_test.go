package navicli

import "github.com/vnx-tools/vnxctl/internal/testutil"

// sgListOutput lists three groups: iSCSI, FC and empty.
var sgListOutput = testutil.StorageGroupListOutput()

const lunListOutput = `LOGICAL UNIT NUMBER 42
Name:  data_lun
UID:  60:06:01:60:1B:C0:38:00:C6:8B:A7:3E:9F:E5:E5:11
Current Owner:  SP A
Default Owner:  SP A
`

const getAgentOutput = `
Agent Rev:           7.33.8 (2.97)
Name:                K10
Desc:
Node:                A-APM00152312055
Physical Node:       K10
Signature:           3979103
Peer Signature:      3979109
Revision:            05.33.008.5.119
SCSI Id:             0
Model:               VNX5400
Model Type:          Rackmount
Prom Rev:            1.71.00
SP Memory:           16384
Serial No:           APM00152312055
SP Identifier:       A
Cabinet:             DPE7
`
