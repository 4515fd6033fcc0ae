package dsn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

// parseNetwork extracts nets and netclasses
// Expected format: (network (net NAME (pins ...)) ... (class NAME net... (circuit ...) (rule ...)))
func parseNetwork(node *sexp.List) (Network, error) {
	network := Network{Classes: make(map[string]NetClass)}

	table := map[string]handler{
		"net": func(n *sexp.List) error {
			net, err := parseNet(n)
			if err != nil {
				return err
			}
			network.Nets = append(network.Nets, net)
			return nil
		},
		"class": func(n *sexp.List) error {
			class, err := parseNetClass(n)
			if err != nil {
				return err
			}
			if _, exists := network.Classes[class.Name]; !exists {
				network.ClassOrder = append(network.ClassOrder, class.Name)
			}
			network.Classes[class.Name] = class
			return nil
		},
	}

	if err := dispatch("network", sexp.GetListItems(node), table); err != nil {
		return Network{}, err
	}

	return network, nil
}

// parseNet extracts a net and its member pins
// Expected format: (net GND (pins U1-1 R3-2))
func parseNet(node *sexp.List) (Net, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return Net{}, dsnerr.Grammar("network/net", "failed to parse net name: %w", err)
	}
	scope := "network/net " + name

	pins, err := sexp.GetList(node, 2)
	if err != nil {
		return Net{}, dsnerr.Grammar(scope, "failed to find pins list: %w", err)
	}
	if kw, _ := sexp.GetNodeName(pins); kw != "pins" {
		return Net{}, dsnerr.Grammar(scope, "expected %q list, got %q", "pins", kw)
	}

	net := Net{Name: name}
	for _, item := range sexp.GetListItems(pins) {
		token, ok := item.(sexp.Atom)
		if !ok {
			return Net{}, dsnerr.Grammar(scope, "expected pin reference like U1-5, got list %s", item)
		}
		ref, err := ParsePinRef(string(token))
		if err != nil {
			return Net{}, dsnerr.Grammar(scope, "%w", err)
		}
		net.Pins = append(net.Pins, ref)
	}

	return net, nil
}

// ParsePinRef splits a REFERENCE-PINNUMBER token on its single '-'
func ParsePinRef(token string) (PinRef, error) {
	if strings.Count(token, "-") != 1 {
		return PinRef{}, fmt.Errorf("invalid pin reference %q: expected exactly one '-'", token)
	}

	component, number, _ := strings.Cut(token, "-")
	if component == "" {
		return PinRef{}, fmt.Errorf("invalid pin reference %q: empty component reference", token)
	}

	pin, err := strconv.Atoi(number)
	if err != nil {
		return PinRef{}, fmt.Errorf("invalid pin reference %q: %w", token, err)
	}

	return PinRef{Component: component, Pin: pin}, nil
}

// parseNetClass extracts a netclass
// Expected format: (class NAME net1 net2 ... (circuit (use_via VIA)) (rule (width W) (clearance C)))
// Member nets are the bare atoms before the first nested list. Nested lists
// other than circuit and rule are skipped.
func parseNetClass(node *sexp.List) (NetClass, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return NetClass{}, dsnerr.Grammar("network/class", "failed to parse class name: %w", err)
	}

	class := NetClass{Name: name}
	scope := "network/class " + name

	items := node.Items()[2:]
	i := 0
	for ; i < len(items); i++ {
		atom, ok := items[i].(sexp.Atom)
		if !ok {
			break
		}
		class.NetNames = append(class.NetNames, string(atom))
	}

	for _, item := range items[i:] {
		list, ok := item.(*sexp.List)
		if !ok {
			return NetClass{}, dsnerr.Grammar(scope, "unexpected atom %s after class rules", item)
		}

		kw, _ := sexp.GetNodeName(list)
		switch kw {
		case "circuit":
			if err := parseClassCircuit(scope, list, &class); err != nil {
				return NetClass{}, err
			}
		case "rule":
			if err := parseClassRule(scope, list, &class); err != nil {
				return NetClass{}, err
			}
		}
	}

	return class, nil
}

// parseClassCircuit reads (circuit (use_via VIA))
func parseClassCircuit(scope string, node *sexp.List, class *NetClass) error {
	useVia, ok := sexp.FindNode(node, "use_via")
	if !ok {
		return nil
	}

	via, err := sexp.GetString(useVia, 1)
	if err != nil {
		return dsnerr.Grammar(scope+"/circuit", "failed to parse via name: %w", err)
	}
	class.ViaName = via
	return nil
}

// parseClassRule reads (rule (width W) (clearance C))
func parseClassRule(scope string, node *sexp.List, class *NetClass) error {
	scope += "/rule"

	// A repeated rule replaces the earlier value.
	for _, width := range sexp.FindAllNodes(node, "width") {
		w, err := sexp.GetFloat(width, 1)
		if err != nil {
			return dsnerr.Grammar(scope, "failed to parse width: %w", err)
		}
		class.Width = w
	}

	for _, clearance := range sexp.FindAllNodes(node, "clearance") {
		c, err := sexp.GetFloat(clearance, 1)
		if err != nil {
			return dsnerr.Grammar(scope, "failed to parse clearance: %w", err)
		}
		class.Clearance = c
	}

	return nil
}
