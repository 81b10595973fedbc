package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Binding represents one network endpoint a service exposes. A binding may
// carry a connection string instead of, or alongside, host and port.
type Binding struct {
	Name             string `yaml:"name,omitempty" json:"name,omitempty"`
	Protocol         string `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Host             string `yaml:"host,omitempty" json:"host,omitempty"`
	Port             *int   `yaml:"port,omitempty" json:"port,omitempty"`
	ConnectionString string `yaml:"connectionString,omitempty" json:"connectionString,omitempty"`
}

// ServiceDescription is the declarative or inferred record for one service
// before topology resolution. Replicas stays nil until construction so the
// launch-configuration merge can tell "unset" from an authored value.
type ServiceDescription struct {
	Name          string            `yaml:"name" json:"name"`
	Project       string            `yaml:"project,omitempty" json:"project,omitempty"`
	DockerImage   string            `yaml:"dockerImage,omitempty" json:"dockerImage,omitempty"`
	Bindings      []Binding         `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Replicas      *int              `yaml:"replicas,omitempty" json:"replicas,omitempty"`
	Configuration map[string]string `yaml:"configuration,omitempty" json:"configuration,omitempty"`
}

// Instance identifies one replica of a running service.
type Instance struct {
	UID  string `yaml:"uid" json:"uid"`
	Name string `yaml:"name" json:"name"`
}

// ServiceRecord wraps a finalized ServiceDescription together with the
// runtime-only fields owned by the launcher: the resolved replica count and
// one identity per replica.
type ServiceRecord struct {
	Description ServiceDescription `yaml:"description" json:"description"`
	Replicas    int                `yaml:"replicas" json:"replicas"`
	Instances   []Instance         `yaml:"instances" json:"instances"`
}

// Application is the resolved topology: the name-keyed collection of all
// services in one run. It is built once and never mutated afterwards.
type Application struct {
	ContextDirectory string                    `yaml:"contextDirectory" json:"contextDirectory"`
	Services         map[string]*ServiceRecord `yaml:"services" json:"services"`
}

// NewApplication builds the topology from the final sequence of service
// descriptions produced by exactly one loader. Replicas default to 1 here if
// still unset; duplicate names are not rejected, the last writer wins.
func NewApplication(contextDir string, descriptions []ServiceDescription) *Application {
	app := &Application{
		ContextDirectory: contextDir,
		Services:         make(map[string]*ServiceRecord, len(descriptions)),
	}

	for _, desc := range descriptions {
		replicas := 1
		if desc.Replicas != nil {
			replicas = *desc.Replicas
		}

		record := &ServiceRecord{
			Description: desc,
			Replicas:    replicas,
			Instances:   newInstances(desc.Name, replicas),
		}
		app.Services[desc.Name] = record
	}

	return app
}

func newInstances(serviceName string, replicas int) []Instance {
	instances := make([]Instance, 0, replicas)
	for i := 0; i < replicas; i++ {
		uid := uuid.New().String()
		instances = append(instances, Instance{
			UID:  uid,
			Name: fmt.Sprintf("%s-%s", serviceName, uid[:8]),
		})
	}
	return instances
}
