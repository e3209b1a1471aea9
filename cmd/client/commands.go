package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atinyakov/tripwise/internal/client"
	"github.com/atinyakov/tripwise/internal/models"
	"github.com/spf13/cobra"
)

// cli carries the state shared by every subcommand.
type cli struct {
	baseURL string
	timeout time.Duration
	api     *client.Client
	in      io.Reader
	out     io.Writer
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{in: in, out: out}

	root := &cobra.Command{
		Use:           "tripwise",
		Short:         "Command-line client for the TripWise travel service",
		Version:       fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.api = c.newAPI()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.baseURL, "url", "http://localhost:8080", "server base URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		c.spotsCmd(),
		c.hotelsCmd(),
		c.carsCmd(),
		c.postsCmd(),
		c.postCmd(),
		c.loginCmd(),
		c.signupCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.recommendCmd(),
		c.askCmd(),
		c.setHotelPriceCmd(),
		c.setCarPriceCmd(),
		c.shellCmd(),
	)
	return root
}

// newAPI builds the API client. Its transport timeout follows --timeout.
func (c *cli) newAPI() *client.Client {
	return client.New(c.baseURL, &http.Client{Timeout: c.timeout})
}

func (c *cli) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *cli) spotsCmd() *cobra.Command {
	var q, region string
	cmd := &cobra.Command{
		Use:   "spots",
		Short: "List destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			spots, err := c.api.Spots(ctx, q, models.Region(region))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tREGION\tRATING\tTAGS")
			for _, s := range spots {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\n", s.ID, s.Name, s.Region, s.Rating, strings.Join(s.Tags, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&q, "query", "q", "", "match name or tag")
	cmd.Flags().StringVar(&region, "region", "", "limit to a region")
	return cmd
}

func (c *cli) hotelsCmd() *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "hotels",
		Short: "List hotels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			hotels, err := c.api.Hotels(ctx, location)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tPKR/NIGHT\tRATING")
			for _, h := range hotels {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.1f\n", h.ID, h.Name, h.Location, h.PricePerNight, h.Rating)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "limit to a location")
	return cmd
}

func (c *cli) carsCmd() *cobra.Command {
	var carType string
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "List rental cars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			cars, err := c.api.Cars(ctx, models.CarType(carType))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMODEL\tTYPE\tPKR/DAY")
			for _, car := range cars {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\n", car.ID, car.Model, car.Type, car.PricePerDay)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&carType, "type", "", "SUV, Sedan, 4x4 or Van")
	return cmd
}

func (c *cli) postsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "Show the community feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			posts, err := c.api.Posts(ctx)
			if err != nil {
				return err
			}
			for _, p := range posts {
				at := time.UnixMilli(p.Timestamp).Format(time.DateTime)
				fmt.Fprintf(c.out, "[%s] %s (%d likes) %s\n", at, p.UserName, p.Likes, p.LocationTag)
				fmt.Fprintf(c.out, "  %s\n", p.Content)
			}
			return nil
		},
	}
}

func (c *cli) postCmd() *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "post [content]",
		Short: "Share a post; prompts when no content is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := client.NewPost{Content: strings.Join(args, " "), LocationTag: tag}
			if p.Content == "" {
				p = client.PromptForPost(c.in, c.out)
			}
			ctx, cancel := c.ctx()
			defer cancel()
			post, err := c.api.CreatePost(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Posted %s as %s\n", post.ID, post.UserName)
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "location tag")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			u, err := c.api.Login(ctx, args[0], admin)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Welcome, %s (%s)\n", u.Name, u.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "sign in as administrator")
	return cmd
}

func (c *cli) signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <name> <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			u, err := c.api.Signup(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Welcome, %s\n", u.Name)
			return nil
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			if err := c.api.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Signed out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			u, err := c.api.Session(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				fmt.Fprintln(c.out, "Not signed in")
				return nil
			}
			fmt.Fprintf(c.out, "%s <%s> %s\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
}

func (c *cli) recommendCmd() *cobra.Command {
	var (
		interests   string
		region      string
		budget      string
		days        int
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest destinations for a trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.RecommendationRequest{
				Duration:  days,
				Budget:    models.Budget(budget),
				Interests: client.SplitList(interests),
				Region:    models.Region(region),
			}
			if interactive {
				req = client.PromptForTrip(c.in, c.out)
			}
			ctx, cancel := c.ctx()
			defer cancel()
			recs, err := c.api.Recommend(ctx, req)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(c.out, "No matching destinations")
				return nil
			}
			for i, r := range recs {
				fmt.Fprintf(c.out, "%d. %s (%s) score %.1f\n", i+1, r.Name, r.Region, r.Score)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&interests, "interests", "", "comma-separated interests")
	cmd.Flags().StringVar(&region, "region", "", "limit to a region")
	cmd.Flags().StringVar(&budget, "budget", string(models.BudgetStandard), "budget, standard or luxury")
	cmd.Flags().IntVar(&days, "days", 3, "trip length in days")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for the trip details")
	return cmd
}

func (c *cli) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the travel assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			reply, err := c.api.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, reply)
			return nil
		},
	}
}

func (c *cli) setHotelPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-hotel-price <id> <price>",
		Short: "Change a hotel's nightly price (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parsePrice(args[1])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()
			hotels, err := c.api.Hotels(ctx, "")
			if err != nil {
				return err
			}
			for _, h := range hotels {
				if h.ID != args[0] {
					continue
				}
				old := h.PricePerNight
				h.PricePerNight = price
				if err := c.api.UpdateHotel(ctx, h); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s: %.0f -> %.0f PKR/night\n", h.Name, old, price)
				return nil
			}
			return fmt.Errorf("hotel %q not found", args[0])
		},
	}
}

func (c *cli) setCarPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-car-price <id> <price>",
		Short: "Change a car's daily price (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parsePrice(args[1])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()
			cars, err := c.api.Cars(ctx, "")
			if err != nil {
				return err
			}
			for _, car := range cars {
				if car.ID != args[0] {
					continue
				}
				old := car.PricePerDay
				car.PricePerDay = price
				if err := c.api.UpdateCar(ctx, car); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s: %.0f -> %.0f PKR/day\n", car.Model, old, price)
				return nil
			}
			return fmt.Errorf("car %q not found", args[0])
		},
	}
}

func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || p < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return p, nil
}
