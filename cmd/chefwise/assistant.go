package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/chefwise/chefwise/internal/domain/mealplan"
	"github.com/chefwise/chefwise/internal/domain/recipe"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

// draftedSuggestion pairs a suggestion with the draft it was stashed under
type draftedSuggestion struct {
	DraftID       string                  `json:"draft_id"`
	TotalTime     *int                    `json:"total_time_minutes,omitempty"`
	Suggestion    recipe.RecipeSuggestion `json:"suggestion"`
	SavedRecipeID uint                    `json:"saved_recipe_id,omitempty"`
}

func suggestCmd(opts *rootOptions) *cobra.Command {
	var (
		ingredients  []string
		restrictions []string
		numRecipes   int
		maxCookTime  int
		useComplex   bool
		ignorePrefs  bool
		save         []int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest recipes from available ingredients",
		Long: `Suggest recipes that use the given ingredients. Each suggestion is kept as a
draft; use --save to store some of them right away, or "recipes save-draft"
later when drafts are kept in redis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ingredients) == 0 {
				return errors.NewValidationError("at least one --ingredient is required")
			}

			var (
				suggester inbound.RecipeSuggester
				library   inbound.RecipeLibrary
				prefsSvc  inbound.PreferencesService
			)
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				command := inbound.SuggestRecipesCommand{
					Ingredients:         ingredients,
					NumRecipes:          numRecipes,
					DietaryRestrictions: restrictions,
					UseComplexModel:     useComplex,
				}
				if cmd.Flags().Changed("max-cook-time") {
					command.MaxCookTimeMinutes = &maxCookTime
				}
				if !ignorePrefs {
					prefs, err := prefsSvc.GetPreferences(ctx)
					if err != nil {
						return err
					}
					command.Preferences = prefs
				}

				suggestions, err := suggester.SuggestRecipes(ctx, command)
				if err != nil {
					return err
				}

				ids, err := library.StashSuggestions(ctx, suggestions)
				if err != nil {
					return err
				}

				out := make([]draftedSuggestion, 0, len(suggestions))
				for i, s := range suggestions {
					out = append(out, draftedSuggestion{
						DraftID:    ids[i],
						TotalTime:  s.TotalTimeMinutes(),
						Suggestion: s,
					})
				}

				for _, n := range save {
					if n < 1 || n > len(out) {
						return errors.NewValidationError("--save index out of range")
					}
					saved, err := library.SaveDraft(ctx, out[n-1].DraftID)
					if err != nil {
						return err
					}
					out[n-1].SavedRecipeID = saved.ID
				}

				return printJSON(cmd.OutOrStdout(), out)
			}, &suggester, &library, &prefsSvc)
		},
	}

	cmd.Flags().StringSliceVarP(&ingredients, "ingredient", "i", nil, "Available ingredient (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&restrictions, "restriction", nil, "Dietary restriction for this request")
	cmd.Flags().IntVarP(&numRecipes, "num", "n", inbound.DefaultNumRecipes, "Number of recipes to suggest (1-5)")
	cmd.Flags().IntVar(&maxCookTime, "max-cook-time", 0, "Maximum cooking time in minutes")
	cmd.Flags().BoolVar(&useComplex, "complex", false, "Use the complex model tier")
	cmd.Flags().BoolVar(&ignorePrefs, "ignore-preferences", false, "Do not apply saved preferences")
	cmd.Flags().IntSliceVar(&save, "save", nil, "Save the suggestion at this 1-based position")

	return cmd
}

// planOutput is what the plan command prints
type planOutput struct {
	Plan         *mealplan.MealPlan          `json:"plan"`
	Days         []mealplan.DayPlan          `json:"days"`
	ShoppingList []mealplan.ShoppingListItem `json:"shopping_list,omitempty"`
}

func planCmd(opts *rootOptions) *cobra.Command {
	var (
		numDays    int
		start      string
		mealTypes  []string
		cuisines   []string
		useComplex bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a meal plan and shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			command := inbound.GenerateMealPlanCommand{
				NumDays:          numDays,
				FavoriteCuisines: cuisines,
				UseComplexModel:  useComplex,
			}
			if start != "" {
				d, err := mealplan.ParseDate(start)
				if err != nil {
					return errors.NewValidationError("--start must be a YYYY-MM-DD date")
				}
				command.StartDate = &d
			}
			for _, raw := range mealTypes {
				mt, err := mealplan.ParseMealType(raw)
				if err != nil {
					return errors.NewValidationError("unknown meal type " + raw)
				}
				command.MealTypes = append(command.MealTypes, mt)
			}

			var (
				planner  inbound.MealPlanner
				plans    inbound.MealPlanLibrary
				prefsSvc inbound.PreferencesService
			)
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				prefs, err := prefsSvc.GetPreferences(ctx)
				if err != nil {
					return err
				}
				command.Preferences = prefs

				plan, shopping, err := planner.GenerateMealPlan(ctx, command)
				if err != nil {
					return err
				}
				if save {
					if plan, err = plans.SavePlan(ctx, plan); err != nil {
						return err
					}
				}

				return printJSON(cmd.OutOrStdout(), planOutput{
					Plan:         plan,
					Days:         plan.Days(),
					ShoppingList: shopping,
				})
			}, &planner, &plans, &prefsSvc)
		},
	}

	cmd.Flags().IntVarP(&numDays, "days", "d", inbound.DefaultNumDays, "Number of days to plan (1-14)")
	cmd.Flags().StringVar(&start, "start", "", "First day of the plan, YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVar(&mealTypes, "meal", nil, "Meal type to include: breakfast, lunch, dinner, snack")
	cmd.Flags().StringSliceVar(&cuisines, "cuisine", nil, "Cuisine to favor instead of the saved ones")
	cmd.Flags().BoolVar(&useComplex, "complex", false, "Use the complex model tier")
	cmd.Flags().BoolVar(&save, "save", false, "Save the generated plan")

	return cmd
}

// sourceFlags select the recipe a modification starts from
type sourceFlags struct {
	recipeID uint
	draftID  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().UintVar(&f.recipeID, "recipe", 0, "ID of a saved recipe")
	cmd.Flags().StringVar(&f.draftID, "draft", "", "ID of a suggestion draft")
}

// load returns the selected recipe as a suggestion
func (f *sourceFlags) load(ctx context.Context, library inbound.RecipeLibrary) (*recipe.RecipeSuggestion, error) {
	switch {
	case f.recipeID != 0 && f.draftID != "":
		return nil, errors.NewValidationError("use either --recipe or --draft, not both")
	case f.recipeID != 0:
		r, err := library.GetRecipe(ctx, f.recipeID)
		if err != nil {
			return nil, err
		}
		return &recipe.RecipeSuggestion{
			Title:        r.Title,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
			Servings:     r.Servings,
		}, nil
	case f.draftID != "":
		return library.GetDraft(ctx, f.draftID)
	default:
		return nil, errors.NewValidationError("--recipe or --draft is required")
	}
}

// modifiedOutput is what the modify and scale commands print
type modifiedOutput struct {
	Recipe        *recipe.RecipeSuggestion `json:"recipe"`
	SavedRecipeID uint                     `json:"saved_recipe_id,omitempty"`
}

func printModified(ctx context.Context, cmd *cobra.Command, library inbound.RecipeLibrary, modified *recipe.RecipeSuggestion, save bool) error {
	out := modifiedOutput{Recipe: modified}
	if save {
		saved, err := library.SaveSuggestion(ctx, *modified)
		if err != nil {
			return err
		}
		out.SavedRecipeID = saved.ID
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func modifyCmd(opts *rootOptions) *cobra.Command {
	var (
		source           sourceFlags
		modificationType string
		details          string
		useComplex       bool
		save             bool
	)

	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Adapt a recipe, e.g. make it vegan or lower in sugar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modificationType == "" {
				return errors.NewValidationError("--type is required")
			}

			var (
				modifier inbound.RecipeModifier
				library  inbound.RecipeLibrary
			)
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				original, err := source.load(ctx, library)
				if err != nil {
					return err
				}

				modified, err := modifier.ModifyRecipe(ctx, inbound.ModifyRecipeCommand{
					Title:               original.Title,
					Ingredients:         original.Ingredients,
					Instructions:        original.Instructions,
					Servings:            original.Servings,
					ModificationType:    modificationType,
					ModificationDetails: details,
					UseComplexModel:     useComplex,
				})
				if err != nil {
					return err
				}
				return printModified(ctx, cmd, library, modified, save)
			}, &modifier, &library)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&modificationType, "type", "", "Kind of change, e.g. vegan, low-carb, spicier")
	cmd.Flags().StringVar(&details, "details", "", "Additional instructions for the change")
	cmd.Flags().BoolVar(&useComplex, "complex", false, "Use the complex model tier")
	cmd.Flags().BoolVar(&save, "save", false, "Save the modified recipe")

	return cmd
}

func scaleCmd(opts *rootOptions) *cobra.Command {
	var (
		source     sourceFlags
		servings   int
		useComplex bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Scale a recipe to a different number of servings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if servings < 1 {
				return errors.NewValidationError("--servings must be at least 1")
			}

			var (
				modifier inbound.RecipeModifier
				library  inbound.RecipeLibrary
			)
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				original, err := source.load(ctx, library)
				if err != nil {
					return err
				}

				scaled, err := modifier.ScaleRecipe(ctx, inbound.ScaleRecipeCommand{
					Title:            original.Title,
					Ingredients:      original.Ingredients,
					Instructions:     original.Instructions,
					OriginalServings: original.Servings,
					NewServings:      servings,
					UseComplexModel:  useComplex,
				})
				if err != nil {
					return err
				}
				return printModified(ctx, cmd, library, scaled, save)
			}, &modifier, &library)
		},
	}

	source.register(cmd)
	cmd.Flags().IntVarP(&servings, "servings", "s", 0, "New number of servings")
	cmd.Flags().BoolVar(&useComplex, "complex", false, "Use the complex model tier")
	cmd.Flags().BoolVar(&save, "save", false, "Save the scaled recipe")

	return cmd
}

func substituteCmd(opts *rootOptions) *cobra.Command {
	var (
		recipeContext string
		reason        string
		useComplex    bool
	)

	cmd := &cobra.Command{
		Use:   "substitute INGREDIENT",
		Short: "Suggest replacements for an ingredient",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var modifier inbound.RecipeModifier
			return run(cmd.Context(), opts, func(ctx context.Context) error {
				reply, err := modifier.SuggestSubstitution(ctx, inbound.SubstitutionCommand{
					Ingredient:      args[0],
					RecipeContext:   recipeContext,
					Reason:          inbound.SubstitutionReason(reason),
					UseComplexModel: useComplex,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), reply)
			}, &modifier)
		},
	}

	cmd.Flags().StringVar(&recipeContext, "context", "", "The dish or recipe the ingredient is used in")
	cmd.Flags().StringVar(&reason, "reason", string(inbound.ReasonPreference),
		"Why: preference, allergy, unavailable, dietary_restriction, healthier_option")
	cmd.Flags().BoolVar(&useComplex, "complex", false, "Use the complex model tier")

	return cmd
}
