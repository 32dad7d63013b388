package compose

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultVersion = "3.8"

// Marshal renders the document. Top-level sections are separated by blank
// lines and the output ends with a newline.
func (d *Document) Marshal() ([]byte, error) {
	version := d.Version
	if version == "" {
		version = defaultVersion
	}
	sections := []*yaml.Node{
		mapping(strNode("version"), &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.SingleQuotedStyle, Value: version}),
	}

	var services Map
	for _, s := range d.Services {
		services = append(services, Field{s.Name, s.Service.Map()})
	}
	sections = append(sections, node(Map{{"services", services}}))

	if len(d.Volumes) > 0 {
		var vols Map
		for _, v := range d.Volumes {
			vols = append(vols, Field{v, nil})
		}
		sections = append(sections, node(Map{{"volumes", vols}}))
	}

	if len(d.Networks) > 0 {
		var nets Map
		for _, n := range d.Networks {
			var cfg Map
			if n.Driver != "" {
				cfg = append(cfg, Field{"driver", Scalar(n.Driver)})
			}
			if n.Subnet != "" {
				cfg = append(cfg, Field{"ipam", Map{{"config", Records{{{"subnet", Scalar(n.Subnet)}}}}}})
			}
			nets = append(nets, Field{n.Name, cfg})
		}
		sections = append(sections, node(Map{{"networks", nets}}))
	}

	var out bytes.Buffer
	for i, sec := range sections {
		if i > 0 {
			out.WriteByte('\n')
		}
		if err := encodeNode(&out, sec); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// Encode renders an arbitrary map at the top level.
func Encode(m Map) ([]byte, error) {
	var out bytes.Buffer
	if err := encodeNode(&out, node(m)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n *yaml.Node) error {
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encoding compose yaml: %w", err)
	}
	return enc.Close()
}

// node converts v into a YAML node. Strings carry an explicit !!str tag so
// the encoder quotes any value that would otherwise read back as a number,
// bool or null.
func node(v Value) *yaml.Node {
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	case Scalar:
		return strNode(string(v))
	case List:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v {
			seq.Content = append(seq.Content, strNode(item))
		}
		return seq
	case Map:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range v {
			m.Content = append(m.Content, strNode(f.Key), node(f.Value))
		}
		return m
	case Records:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, rec := range v {
			seq.Content = append(seq.Content, node(rec))
		}
		return seq
	}
	panic(fmt.Sprintf("compose: unexpected value %T", v))
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func mapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}
