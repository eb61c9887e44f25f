package navicli

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var (
	keyValueRe = regexp.MustCompile(`^([A-Za-z][A-Za-z /]*?):\s*(.*)$`)
	hbaRowRe   = regexp.MustCompile(`^\s+(\S+)\s+SP\s+([AB])\s+(\d+)\s*$`)
	hluRowRe   = regexp.MustCompile(`^\s+(\d+)\s+(\d+)\s*$`)
)

type section int

const (
	sectionNone section = iota
	sectionHBA
	sectionHLU
)

// parseStorageGroups reads the output of "storagegroup -list".
func parseStorageGroups(out string) ([]*storagegroup.State, error) {
	var (
		groups []*storagegroup.State
		cur    *storagegroup.State
		sec    section
	)

	s := bufio.NewScanner(strings.NewReader(out))
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for lineNo := 1; s.Scan(); lineNo++ {
		line := strings.TrimRight(s.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if kv := keyValueRe.FindStringSubmatch(line); kv != nil {
			key, value := kv[1], strings.TrimSpace(kv[2])
			if key == "Storage Group Name" {
				cur = &storagegroup.State{Name: value}
				groups = append(groups, cur)
				sec = sectionNone
				continue
			}
			if cur == nil {
				continue
			}
			switch key {
			case "Storage Group UID":
				cur.UID = value
			case "HBA/SP Pairs":
				sec = sectionHBA
			case "HLU/ALU Pairs":
				sec = sectionHLU
			case "Shareable":
				cur.Shareable = strings.EqualFold(value, "YES")
				sec = sectionNone
			case "Host name":
				if p := lastHBA(cur); p != nil {
					p.HostName = value
				}
			case "SPPort":
				if p := lastHBA(cur); p != nil {
					p.SPPort = value
				}
			case "Initiator IP":
				if p := lastHBA(cur); p != nil {
					p.HostIP = value
				}
			}
			continue
		}

		if cur == nil {
			continue
		}
		switch sec {
		case sectionHBA:
			if m := hbaRowRe.FindStringSubmatch(line); m != nil {
				port, err := strconv.Atoi(m[3])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid port id %q", lineNo, m[3])
				}
				cur.HBAPorts = append(cur.HBAPorts, storagegroup.HBAPort{
					UID:    m[1],
					SP:     storagegroup.SP(m[2]),
					PortID: port,
				})
			}
		case sectionHLU:
			if m := hluRowRe.FindStringSubmatch(line); m != nil {
				hlu, _ := strconv.Atoi(m[1])
				alu, _ := strconv.Atoi(m[2])
				cur.Mappings = append(cur.Mappings, storagegroup.Mapping{HLU: hlu, ALU: alu})
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func lastHBA(st *storagegroup.State) *storagegroup.HBAPort {
	if len(st.HBAPorts) == 0 {
		return nil
	}
	return &st.HBAPorts[len(st.HBAPorts)-1]
}

var aluRe = regexp.MustCompile(`(?m)^LOGICAL UNIT NUMBER\s+(\d+)`)

// parseLUNNumber reads the ALU from "lun -list" output.
func parseLUNNumber(out string) (int, bool) {
	m := aluRe.FindStringSubmatch(out)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// parseFields reads "Key:  value" lines into a map.
func parseFields(out string) map[string]string {
	fields := make(map[string]string)
	s := bufio.NewScanner(strings.NewReader(out))
	for s.Scan() {
		if kv := keyValueRe.FindStringSubmatch(strings.TrimSpace(s.Text())); kv != nil {
			fields[kv[1]] = strings.TrimSpace(kv[2])
		}
	}
	return fields
}
