package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	shipengine "github.com/shipengine/shipengine-go"
)

func newRootCommand(cfg Config) *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "shipengine",
		Short: "ShipEngine API command line client",
		Long: `shipengine calls the ShipEngine shipping API: address validation,
carriers, rates, labels and tracking.

The API key is taken from --api-key, SHIPENGINE_API_KEY (also read from a
.env file) or the api_key entry of the --config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(cfg.Stdin)
	cmd.SetOut(cfg.Stdout)
	cmd.SetErr(cfg.Stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.apiKey, "api-key", "", "ShipEngine API key (default $SHIPENGINE_API_KEY)")
	flags.StringVar(&g.baseURL, "base-url", "", "API base URL (default "+shipengine.DefaultBaseURL+")")
	flags.IntVar(&g.retries, "retries", shipengine.DefaultRetries, "Retries after a rate limited response")
	flags.DurationVar(&g.timeout, "timeout", shipengine.DefaultTimeout, "Timeout of a single attempt")
	flags.StringVar(&g.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&g.envFile, "env-file", ".env", "Path to a .env file")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Log every request and response to stderr")
	flags.StringVar(&g.logFormat, "log-format", "json", "Log format for --verbose (json, text)")
	g.changed = func(name string) bool {
		return cmd.PersistentFlags().Changed(name)
	}

	cmd.AddCommand(
		newValidateAddressCommand(g),
		newCarriersCommand(g),
		newRatesCommand(g),
		newLabelsCommand(g),
		newVoidLabelCommand(g),
		newTrackCommand(g),
		newVersionCommand(),
	)
	return cmd
}

func newValidateAddressCommand(g *globalFlags) *cobra.Command {
	var (
		addr      shipengine.Address
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "validate-address",
		Short: "Validate and normalize a postal address",
		Example: `  shipengine validate-address --street "4 Jersey St" --street "Suite 200" \
    --city Boston --state MA --postal-code 02215 --country US`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.newClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if normalize {
				norm, err := client.NormalizeAddress(cmd.Context(), addr)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), norm)
			}
			result, err := client.ValidateAddress(cmd.Context(), addr)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&addr.Street, "street", nil, "Street line (repeat for up to 3 lines)")
	f.StringVar(&addr.CityLocality, "city", "", "City or locality")
	f.StringVar(&addr.StateProvince, "state", "", "State or province")
	f.StringVar(&addr.PostalCode, "postal-code", "", "Postal code")
	f.StringVar(&addr.CountryCode, "country", "", "Two letter country code")
	f.StringVar(&addr.Name, "name", "", "Recipient name")
	f.StringVar(&addr.CompanyName, "company", "", "Company name")
	f.StringVar(&addr.Phone, "phone", "", "Phone number")
	f.BoolVar(&normalize, "normalize", false, "Print only the normalized address, failing if it is invalid")
	return cmd
}

func newCarriersCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "carriers",
		Short: "List connected carrier accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.newClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			carriers, err := client.ListCarriers(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), carriers)
		},
	}
}

// shipmentFile is the YAML layout accepted by "rates --file".
type shipmentFile struct {
	ShipmentID  string        `yaml:"shipment_id"`
	CarrierIDs  []string      `yaml:"carrier_ids"`
	ServiceCode string        `yaml:"service_code"`
	ShipDate    string        `yaml:"ship_date"`
	ShipTo      addressFile   `yaml:"ship_to"`
	ShipFrom    addressFile   `yaml:"ship_from"`
	Packages    []packageFile `yaml:"packages"`
}

type addressFile struct {
	Name          string   `yaml:"name"`
	Phone         string   `yaml:"phone"`
	CompanyName   string   `yaml:"company_name"`
	Street        []string `yaml:"street"`
	CityLocality  string   `yaml:"city_locality"`
	StateProvince string   `yaml:"state_province"`
	PostalCode    string   `yaml:"postal_code"`
	CountryCode   string   `yaml:"country_code"`
	IsResidential *bool    `yaml:"is_residential"`
}

type packageFile struct {
	Weight      float64 `yaml:"weight"`
	WeightUnit  string  `yaml:"weight_unit"`
	PackageCode string  `yaml:"package_code"`
}

func (a addressFile) address() shipengine.Address {
	return shipengine.Address{
		Name:          a.Name,
		Phone:         a.Phone,
		CompanyName:   a.CompanyName,
		Street:        a.Street,
		CityLocality:  a.CityLocality,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
		IsResidential: a.IsResidential,
	}
}

func (s shipmentFile) request() (shipengine.RatesRequest, error) {
	req := shipengine.RatesRequest{
		ShipmentID:  s.ShipmentID,
		RateOptions: shipengine.RateOptions{CarrierIDs: s.CarrierIDs},
	}
	if s.ShipmentID != "" {
		return req, nil
	}

	shipment := &shipengine.Shipment{
		ServiceCode: s.ServiceCode,
		ShipTo:      s.ShipTo.address(),
		ShipFrom:    s.ShipFrom.address(),
	}
	if s.ShipDate != "" {
		d, err := time.Parse(time.DateOnly, s.ShipDate)
		if err != nil {
			return req, fmt.Errorf("ship_date: %w", err)
		}
		shipment.ShipDate = d
	}
	for _, p := range s.Packages {
		unit := p.WeightUnit
		if unit == "" {
			unit = "pound"
		}
		shipment.Packages = append(shipment.Packages, shipengine.Package{
			PackageCode: p.PackageCode,
			Weight:      shipengine.Weight{Value: p.Weight, Unit: unit},
		})
	}
	req.Shipment = shipment
	return req, nil
}

func newRatesCommand(g *globalFlags) *cobra.Command {
	var (
		path       string
		shipmentID string
		carrierIDs []string
	)

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Quote shipping rates",
		Long: `Quote rates for an existing shipment (--shipment-id) or for the
shipment described in a YAML file (--file).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sf shipmentFile
			if path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read shipment: %w", err)
				}
				if err := yaml.Unmarshal(data, &sf); err != nil {
					return fmt.Errorf("parse shipment %s: %w", path, err)
				}
			}
			if shipmentID != "" {
				sf.ShipmentID = shipmentID
			}
			if len(carrierIDs) > 0 {
				sf.CarrierIDs = carrierIDs
			}
			req, err := sf.request()
			if err != nil {
				return err
			}

			client, err := g.newClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rates, err := client.GetRatesWithShipmentDetails(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rates)
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "YAML file describing the shipment")
	cmd.Flags().StringVar(&shipmentID, "shipment-id", "", "Existing shipment id")
	cmd.Flags().StringSliceVar(&carrierIDs, "carrier-id", nil, "Carrier id to quote (repeatable)")
	return cmd
}

func newLabelsCommand(g *globalFlags) *cobra.Command {
	var params shipengine.ListLabelsParams

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.newClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			page, err := client.ListLabels(cmd.Context(), params)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "Labels per page (default from config)")
	return cmd
}

func newVoidLabelCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "void-label <label-id>",
		Short: "Void an unused label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := g.newClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			result, err := client.VoidLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newTrackCommand(g *globalFlags) *cobra.Command {
	var labelID, carrierCode, trackingNumber string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track a package",
		Example: `  shipengine track --label-id se-123456
  shipengine track --carrier-code ups --tracking-number 1Z9999999999999999`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if labelID == "" && carrierCode == "" && trackingNumber == "" {
				return fmt.Errorf("either --label-id or --carrier-code and --tracking-number is required")
			}
			client, err := g.newClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var info *shipengine.TrackingInfo
			if labelID != "" {
				info, err = client.TrackUsingLabelID(cmd.Context(), labelID)
			} else {
				info, err = client.TrackUsingCarrierCode(cmd.Context(), carrierCode, trackingNumber)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().StringVar(&labelID, "label-id", "", "ShipEngine label id")
	cmd.Flags().StringVar(&carrierCode, "carrier-code", "", "Carrier code, e.g. ups")
	cmd.Flags().StringVar(&trackingNumber, "tracking-number", "", "Carrier tracking number")
	cmd.MarkFlagsMutuallyExclusive("label-id", "carrier-code")
	cmd.MarkFlagsRequiredTogether("carrier-code", "tracking-number")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), versionOutput{
				Version:    version,
				Commit:     commit,
				SDKVersion: shipengine.Version,
			})
		},
	}
}
