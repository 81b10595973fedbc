package envinject

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eugenenazirov/topo/internal/model"
)

// Sink receives one derived environment pair at a time. Keys are unique per
// invocation set; ordering is unspecified.
type Sink func(key, value string)

// Inject emits the complete environment a target service instance must
// receive: the target's own static configuration verbatim, then the binding
// contract for every service in the topology (the target included).
//
// Two naming schemes are always emitted together, because different
// downstream configuration readers consume one or the other:
//
//	SERVICE__{NAME}__HOST / SERVICE__{NAME}__PORT / SERVICE__{NAME}__PROTOCOL
//	{NAME}_SERVICE_HOST   / {NAME}_SERVICE_PORT   / {NAME}_SERVICE_PROTOCOL
//
// Named bindings extend the stems with the binding name: double underscore in
// the hierarchical scheme, single underscore in the flat one. Connection
// strings are exposed as CONNECTIONSTRING__{NAME}.
func Inject(app *model.Application, target string, sink Sink) error {
	record, ok := app.Services[target]
	if !ok {
		return fmt.Errorf("%w: service %q is not part of the application", model.ErrNotFound, target)
	}

	for key, value := range record.Description.Configuration {
		sink(key, value)
	}

	for _, svc := range app.Services {
		desc := svc.Description
		for _, binding := range desc.Bindings {
			configName, envName := nameStems(desc.Name, binding.Name)

			if binding.ConnectionString != "" {
				sink("CONNECTIONSTRING__"+configName, binding.ConnectionString)
			}
			if binding.Protocol != "" {
				sink("SERVICE__"+configName+"__PROTOCOL", binding.Protocol)
				sink(envName+"_SERVICE_PROTOCOL", binding.Protocol)
			}
			if binding.Port != nil {
				port := strconv.Itoa(*binding.Port)
				sink("SERVICE__"+configName+"__PORT", port)
				sink(envName+"_SERVICE_PORT", port)
			}

			host := binding.Host
			if host == "" {
				host = "localhost"
			}
			sink("SERVICE__"+configName+"__HOST", host)
			sink(envName+"_SERVICE_HOST", host)
		}
	}

	return nil
}

func nameStems(serviceName, bindingName string) (configName, envName string) {
	upper := strings.ToUpper(serviceName)
	if bindingName == "" {
		return upper, upper
	}
	upperBinding := strings.ToUpper(bindingName)
	return upper + "__" + upperBinding, upper + "_" + upperBinding
}
