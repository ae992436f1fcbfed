package compiler

import (
	"fmt"

	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document is the serialized shape of a process description.
// It uses "mapstructure" tags so both YAML and JSON sources decode the same way,
// and "yaml" tags so Encode writes the same shape back.
type Document struct {
	ID            string            `mapstructure:"id" yaml:"id"`
	Name          string            `mapstructure:"name" yaml:"name,omitempty"`
	FlowObjects   []FlowObjectDoc   `mapstructure:"flow_objects" yaml:"flow_objects"`
	SequenceFlows []SequenceFlowDoc `mapstructure:"sequence_flows" yaml:"sequence_flows,omitempty"`
	Metadata      map[string]string `mapstructure:"metadata" yaml:"metadata,omitempty"`
}

type FlowObjectDoc struct {
	ID   string `mapstructure:"id" yaml:"id"`
	Name string `mapstructure:"name" yaml:"name"`
	Type string `mapstructure:"type" yaml:"type"`
}

type SequenceFlowDoc struct {
	ID        string `mapstructure:"id" yaml:"id,omitempty"`
	Name      string `mapstructure:"name" yaml:"name,omitempty"`
	SourceRef string `mapstructure:"source_ref" yaml:"source_ref"`
	TargetRef string `mapstructure:"target_ref" yaml:"target_ref"`
	Condition string `mapstructure:"condition" yaml:"condition,omitempty"`
}

// Parser is responsible for converting raw bytes into a ProcessDefinition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Decode reads a YAML or JSON process description into a Document.
func (p *Parser) Decode(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse process description: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty process description")
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode process description: %w", err)
	}
	return &doc, nil
}

// Encode writes doc as a YAML process description that Decode reads back.
func (p *Parser) Encode(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode process description: %w", err)
	}
	return data, nil
}

// Parse decodes data and builds a finalized ProcessDefinition.
// Missing ids, duplicates and dangling references are load errors; everything
// else (names, flow cardinality) is left to validation.
func (p *Parser) Parse(data []byte) (*definition.ProcessDefinition, error) {
	doc, err := p.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDescription, err)
	}
	def, err := p.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDescription, err)
	}
	return def, nil
}

// Build turns a decoded Document into a finalized ProcessDefinition.
func (p *Parser) Build(doc *Document) (*definition.ProcessDefinition, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("process definition missing ID")
	}

	def := definition.New(doc.ID, doc.Name)
	for k, v := range doc.Metadata {
		if err := def.SetMetadata(k, v); err != nil {
			return nil, err
		}
	}
	for i, fo := range doc.FlowObjects {
		if fo.ID == "" {
			return nil, fmt.Errorf("flow object #%d missing ID", i)
		}
		if fo.Type == "" {
			return nil, fmt.Errorf("flow object %q missing type", fo.ID)
		}
		if err := def.AddFlowObject(domain.NewFlowObject(fo.ID, fo.Name, domain.Kind(fo.Type))); err != nil {
			return nil, err
		}
	}
	for i, sf := range doc.SequenceFlows {
		id := sf.ID
		if id == "" {
			id = fmt.Sprintf("%s->%s#%d", sf.SourceRef, sf.TargetRef, i)
		}
		err := def.AddSequenceFlow(&domain.SequenceFlow{
			ID:        id,
			Name:      sf.Name,
			SourceRef: sf.SourceRef,
			TargetRef: sf.TargetRef,
			Condition: sf.Condition,
		})
		if err != nil {
			return nil, err
		}
	}

	def.Finalize()
	return def, nil
}
