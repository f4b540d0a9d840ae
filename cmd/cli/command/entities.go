package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"skillhub/cmd/cli/command/client"
)

// newCollectionCommand builds list/get/create/update/delete for one REST collection
func newCollectionCommand(use, collection, short string) *cobra.Command {
	parent := &cobra.Command{Use: use, Short: short}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + collection,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")

			result, err := httpClient().List(collection, page, pageSize)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", collection, err)
			}
			if len(result.Data) == 0 {
				fmt.Printf("No %s found.\n", collection)
				return nil
			}
			color.Cyan("Page %d/%d, %d total", result.Page, result.TotalPages, result.Total)
			for _, item := range result.Data {
				printJSON(item)
				fmt.Println(strings.Repeat("-", 50))
			}
			return nil
		},
	}
	list.Flags().Int("page", 1, "page number")
	list.Flags().Int("page-size", 20, "items per page")

	get := &cobra.Command{
		Use:   "get [id]",
		Short: "Get one record by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := httpClient().Get(collection, args[0])
			if err != nil {
				return err
			}
			printJSON(record)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a record from --data or --file",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd)
			if err != nil {
				return err
			}
			record, err := httpClient().Create(collection, body)
			if err != nil {
				return err
			}
			color.Green("✓ Created")
			printJSON(record)
			return nil
		},
	}

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace a record from --data or --file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd)
			if err != nil {
				return err
			}
			record, err := httpClient().Update(collection, args[0], body)
			if err != nil {
				return err
			}
			color.Green("✓ Updated")
			printJSON(record)
			return nil
		},
	}

	for _, c := range []*cobra.Command{create, update} {
		c.Flags().String("data", "", "JSON body")
		c.Flags().String("file", "", "path to a JSON file")
	}

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a record by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := httpClient().Delete(collection, args[0])
			if err != nil {
				return err
			}
			color.Green("✓ Deleted")
			printJSON(record)
			return nil
		},
	}

	parent.AddCommand(list, get, create, update, del)
	return parent
}

func httpClient() *client.HTTPClient {
	c := client.NewHTTPClient(apiURL)
	c.SetToken(accessToken())
	return c
}

func readBody(cmd *cobra.Command) (json.RawMessage, error) {
	data, _ := cmd.Flags().GetString("data")
	file, _ := cmd.Flags().GetString("file")

	var raw []byte
	switch {
	case data != "" && file != "":
		return nil, fmt.Errorf("use either --data or --file")
	case data != "":
		raw = []byte(data)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		raw = b
	default:
		return nil, fmt.Errorf("a JSON body is required (--data or --file)")
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("body is not valid JSON")
	}
	return raw, nil
}

func printJSON(raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(buf.String())
}

func init() {
	rootCmd.AddCommand(
		newCollectionCommand("org", "organizations", "Organization commands"),
		newCollectionCommand("product", "products", "Product commands"),
		newCollectionCommand("skill", "skills", "Skill commands"),
		newCollectionCommand("story", "user-stories", "User story commands"),
	)
}
