package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/preferences"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

func recipesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Manage saved recipes",
	}

	// withLibrary runs fn against the recipe library
	withLibrary := func(cmd *cobra.Command, fn func(ctx context.Context, library inbound.RecipeLibrary) error) error {
		var library inbound.RecipeLibrary
		return run(cmd.Context(), opts, func(ctx context.Context) error {
			return fn(ctx, library)
		}, &library)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved recipes, newest first",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd, func(ctx context.Context, library inbound.RecipeLibrary) error {
				recipes, err := library.ListRecipes(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), recipes)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search QUERY",
		Short: "Search saved recipes by title or description",
		Args:  positional(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withLibrary(cmd, func(ctx context.Context, library inbound.RecipeLibrary) error {
				recipes, err := library.SearchRecipes(ctx, query)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), recipes)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show a saved recipe",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withLibrary(cmd, func(ctx context.Context, library inbound.RecipeLibrary) error {
				r, err := library.GetRecipe(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved recipe; meal plans keep the recipe title",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withLibrary(cmd, func(ctx context.Context, library inbound.RecipeLibrary) error {
				return library.DeleteRecipe(ctx, id)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save-draft DRAFT_ID",
		Short: "Save a suggestion kept as a draft",
		Long: `Save a suggestion kept as a draft by an earlier "suggest" run. Drafts only
outlive a single run when drafts.backend is redis.`,
		Args: positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd, func(ctx context.Context, library inbound.RecipeLibrary) error {
				r, err := library.SaveDraft(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	})

	return cmd
}

func plansCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage saved meal plans",
	}

	withPlans := func(cmd *cobra.Command, fn func(ctx context.Context, plans inbound.MealPlanLibrary) error) error {
		var plans inbound.MealPlanLibrary
		return run(cmd.Context(), opts, func(ctx context.Context) error {
			return fn(ctx, plans)
		}, &plans)
	}

	printPlan := func(cmd *cobra.Command, plan *mealplan.MealPlan) error {
		return printJSON(cmd.OutOrStdout(), planOutput{Plan: plan, Days: plan.Days()})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved meal plans",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlans(cmd, func(ctx context.Context, plans inbound.MealPlanLibrary) error {
				all, err := plans.ListPlans(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), all)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show a saved meal plan by day",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withPlans(cmd, func(ctx context.Context, plans inbound.MealPlanLibrary) error {
				plan, err := plans.GetPlan(ctx, id)
				if err != nil {
					return err
				}
				return printPlan(cmd, plan)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the meal plan covering today",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlans(cmd, func(ctx context.Context, plans inbound.MealPlanLibrary) error {
				plan, err := plans.CurrentPlan(ctx)
				if err != nil {
					return err
				}
				return printPlan(cmd, plan)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved meal plan and its meals",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withPlans(cmd, func(ctx context.Context, plans inbound.MealPlanLibrary) error {
				return plans.DeletePlan(ctx, id)
			})
		},
	})

	return cmd
}

func prefsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current preferences",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc inbound.PreferencesService
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				prefs, err := svc.GetPreferences(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), prefs)
			}, &svc)
		},
	})

	cmd.AddCommand(prefsSetCmd(opts))

	return cmd
}

// prefsFlags holds the values of "prefs set"; only flags the user passed
// are applied
type prefsFlags struct {
	restrictions []string
	allergies    []string
	dislikes     []string
	cuisines     []string
	skill        string
	servings     int
	maxCookTime  int
	quick        bool
	budget       bool
}

func (f *prefsFlags) apply(cmd *cobra.Command, prefs *preferences.UserPreferences) error {
	changed := cmd.Flags().Changed

	if changed("restriction") {
		prefs.DietaryRestrictions = f.restrictions
	}
	if changed("allergy") {
		prefs.Allergies = f.allergies
	}
	if changed("dislike") {
		prefs.DislikedIngredients = f.dislikes
	}
	if changed("cuisine") {
		prefs.FavoriteCuisines = f.cuisines
	}
	if changed("skill") {
		level, err := preferences.ParseSkillLevel(f.skill)
		if err != nil {
			return errors.NewValidationError("--skill must be beginner, intermediate or advanced")
		}
		prefs.SkillLevel = level
	}
	if changed("servings") {
		prefs.ServingSize = f.servings
	}
	if changed("max-cook-time") {
		if f.maxCookTime == 0 {
			prefs.MaxCookTimeMinutes = nil
		} else {
			maxCook := f.maxCookTime
			prefs.MaxCookTimeMinutes = &maxCook
		}
	}
	if changed("quick") {
		prefs.PreferQuickMeals = f.quick
	}
	if changed("budget") {
		prefs.BudgetConscious = f.budget
	}
	return nil
}

func prefsSetCmd(opts *rootOptions) *cobra.Command {
	var flags prefsFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences; list flags replace the stored list",
		Example: `  chefwise prefs set --restriction vegetarian --allergy peanuts
  chefwise prefs set --max-cook-time 0   # clear the limit`,
		Args: positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc inbound.PreferencesService
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				prefs, err := svc.GetPreferences(ctx)
				if err != nil {
					return err
				}
				if err := flags.apply(cmd, prefs); err != nil {
					return err
				}

				updated, err := svc.UpdatePreferences(ctx, *prefs)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), updated)
			}, &svc)
		},
	}

	cmd.Flags().StringSliceVar(&flags.restrictions, "restriction", nil, "Dietary restriction")
	cmd.Flags().StringSliceVar(&flags.allergies, "allergy", nil, "Allergy")
	cmd.Flags().StringSliceVar(&flags.dislikes, "dislike", nil, "Disliked ingredient")
	cmd.Flags().StringSliceVar(&flags.cuisines, "cuisine", nil, "Favorite cuisine")
	cmd.Flags().StringVar(&flags.skill, "skill", "", "Cooking skill: beginner, intermediate, advanced")
	cmd.Flags().IntVar(&flags.servings, "servings", 0, "Default serving size")
	cmd.Flags().IntVar(&flags.maxCookTime, "max-cook-time", 0, "Maximum cooking time in minutes, 0 clears it")
	cmd.Flags().BoolVar(&flags.quick, "quick", false, "Prefer quick meals")
	cmd.Flags().BoolVar(&flags.budget, "budget", false, "Budget conscious")

	return cmd
}
