package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gitlab.com/dirk.krummacker/youthere/internal/client"
	"gitlab.com/dirk.krummacker/youthere/internal/config"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
	"gopkg.in/yaml.v3"
)

// options are the flags shared by all commands.
type options struct {
	serviceURL string
}

// client returns a client for the service URL given by flag, or by configuration.
func (o *options) client() (*client.Client, error) {
	url := o.serviceURL
	if url == "" {
		cfg, err := config.LoadDefault()
		if err != nil {
			return nil, err
		}
		url = cfg.ServiceURL
	}
	return client.New(url, nil), nil
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "contacts",
		Short:         "YouThere - remember the people you met and where you met them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	root.PersistentFlags().StringVar(&opts.serviceURL, "url", "",
		"Base URL of the contact book service (default: $CONTACTS_URL or http://localhost:8080)")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newPhotoCmd(opts),
		newTrackCmd(opts),
		newLocateCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid contact id %q", arg)
	}
	return id, nil
}

func newListCmd(opts *options) *cobra.Command {
	var lastName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts sorted by last name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			result, err := c.List(cmd.Context(), lastName)
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&lastName, "lastname", "", "only contacts whose last name starts with this prefix")
	return cmd
}

// printList writes one block per contact: name and id, then the summary.
func printList(w io.Writer, result []model.Contact) {
	if len(result) == 0 {
		fmt.Fprintln(w, "No contacts.")
		return
	}
	for _, contact := range result {
		fmt.Fprintf(w, "%s  (%s)\n    %s\n", contact.DisplayName(), contact.Id, contact.Summary())
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <contact-id>",
		Short: "Show a contact and where you met",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			contact, err := c.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			pin, err := c.Location(cmd.Context(), id)
			if err != nil {
				return err
			}
			printContact(cmd.OutOrStdout(), contact, pin)
			return nil
		},
	}
}

// printContact writes the details of a single contact and where it was met.
func printContact(w io.Writer, contact model.Contact, pin model.LocationAnnotation) {
	fmt.Fprintln(w, contact.DisplayName())
	fmt.Fprintln(w, contact.Description)
	fmt.Fprintf(w, "Met at:   %s\n", pin.Title)
	fmt.Fprintf(w, "Event:    %s\n", pin.Subtitle)
	fmt.Fprintf(w, "Location: %s, %s\n",
		strconv.FormatFloat(pin.Latitude, 'f', -1, 64),
		strconv.FormatFloat(pin.Longitude, 'f', -1, 64))
}

func newAddCmd(opts *options) *cobra.Command {
	var form model.ContactForm
	var photoPath string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !form.Valid() {
				return fmt.Errorf("whoops! %s", form.MissingDataMessage())
			}
			if photoPath != "" {
				photo, err := os.ReadFile(photoPath)
				if err != nil {
					return err
				}
				form.Photo = photo
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			contact, err := c.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", contact.DisplayName(), contact.Id)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.FirstName, "first", "", "first name (required)")
	cmd.Flags().StringVar(&form.LastName, "last", "", "last name (required)")
	cmd.Flags().StringVar(&form.Description, "description", "", "something about the contact")
	cmd.Flags().StringVar(&form.MeetingPlace, "place", "", "where you met")
	cmd.Flags().StringVar(&form.EventDetails, "event", "", "further details about the event")
	cmd.Flags().BoolVar(&form.SaveLocation, "save-location", false, "store the last reported location with the contact")
	cmd.Flags().StringVar(&photoPath, "photo", "", "path to a JPEG, PNG or GIF photo")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <contact-id>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact %s\n", id)
			return nil
		},
	}
}

func newPhotoCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "photo <contact-id>",
		Short: "Download the photo of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			photo, err := c.Photo(cmd.Context(), id)
			if err != nil {
				return err
			}
			if output == "" {
				output = id.String() + ".jpg"
			}
			if err := os.WriteFile(output, photo, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved photo to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: <contact-id>.jpg)")
	return cmd
}

func newTrackCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Allow locations to be saved with new contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.StartTracking(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Location tracking started")
			return nil
		},
	}
}

func newLocateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <latitude> <longitude>",
		Short: "Report the current location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil || lat < -90 || lat > 90 {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil || lon < -180 || lon > 180 {
				return fmt.Errorf("invalid longitude %q", args[1])
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			return c.ReportLocation(cmd.Context(), model.Coordinate{Latitude: lat, Longitude: lon})
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all contacts as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			result, err := c.List(cmd.Context(), "")
			if err != nil {
				return err
			}
			return export(cmd.OutOrStdout(), result, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

// exportedContact is a contact with its map pin, as written by export.
type exportedContact struct {
	Id          string                   `json:"id"          yaml:"id"`
	FirstName   string                   `json:"firstName"   yaml:"firstName"`
	LastName    string                   `json:"lastName"    yaml:"lastName"`
	Description string                   `json:"description" yaml:"description,omitempty"`
	Location    model.LocationAnnotation `json:"location"    yaml:"location"`
}

// export writes the contacts in the given format.
func export(w io.Writer, result []model.Contact, format string) error {
	exported := make([]exportedContact, 0, len(result))
	for _, contact := range result {
		exported = append(exported, exportedContact{
			Id:          contact.Id.String(),
			FirstName:   contact.FirstName,
			LastName:    contact.LastName,
			Description: contact.Description,
			Location:    contact.Annotation(),
		})
	}
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "    ")
		return encoder.Encode(exported)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(exported); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
