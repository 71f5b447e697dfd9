package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/cassiomorais/connector-service/internal/bootstrap"
	"github.com/cassiomorais/connector-service/internal/controller"
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/service"
	"github.com/cassiomorais/connector-service/internal/wire"
)

func authorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorize [request.json]",
		Short: "Send one authorize request to a connector",
		Long: `Reads an authorize request (the same JSON the HTTP API accepts) from
the given file, or stdin when the argument is "-", and prints the result.
Credentials default to the connector's configured auth.`,
		Args: cobra.ExactArgs(1),
		RunE: runAuthorize,
	}

	cmd.Flags().String("connector", "", "Connector name (default: server.default_connector)")
	cmd.Flags().String("auth-type", "", "Override auth type (TemporaryAuth, HeaderKey, BodyKey)")
	cmd.Flags().String("api-key", "", "API key for --auth-type")
	cmd.Flags().String("key1", "", "Secondary key for --auth-type BodyKey")
	cmd.Flags().String("merchant-id", "", "Merchant the call is made for")

	return cmd
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	app, err := bootstrap.New(bootstrap.Options{
		ServiceName:      "connectorctl",
		MetricsNamespace: "connectorctl",
		ConfigPath:       configPath,
		LogOutput:        os.Stderr,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	req, err := readAuthorizeRequest(args[0])
	if err != nil {
		return err
	}

	id := app.DefaultConnector()
	if name, _ := cmd.Flags().GetString("connector"); name != "" {
		if id, err = connector.ParseConnectorEnum(name); err != nil {
			return err
		}
	}

	var opts []service.AuthorizeOption
	if tag, _ := cmd.Flags().GetString("auth-type"); tag != "" {
		apiKey, _ := cmd.Flags().GetString("api-key")
		key1, _ := cmd.Flags().GetString("key1")
		auth, err := router.ParseAuthType(tag, apiKey, key1)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithAuth(auth))
	}
	if merchant, _ := cmd.Flags().GetString("merchant-id"); merchant != "" {
		opts = append(opts, service.WithMerchantID(merchant))
	}

	res, err := app.Authorize.Authorize(cmd.Context(), req, id, opts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(controller.NewAuthorizeResponse(res))
}

func readAuthorizeRequest(path string) (wire.AuthorizeRequest, error) {
	var req wire.AuthorizeRequest

	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		in = f
	}

	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	if err := validator.New().Struct(req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}
