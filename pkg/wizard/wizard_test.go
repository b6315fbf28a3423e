package wizard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJourney_StartsAtFirstQuestion(t *testing.T) {
	j := NewJourney()

	require.NotEmpty(t, j.ID)
	require.Equal(t, PhaseQuestioning, j.Phase())
	require.Equal(t, 0, j.Index())
	require.Equal(t, Questions[0], j.Current())
}

func TestAdvance_BlankAnswerLeavesStateUnchanged(t *testing.T) {
	cases := []string{"", "   ", "\t\n"}
	for _, answer := range cases {
		j := NewJourney()

		err := j.Advance(answer)

		require.ErrorIs(t, err, ErrBlankAnswer, "answer=%q", answer)
		require.Equal(t, 0, j.Index())
		require.False(t, j.Finalized())
	}
}

func TestAdvance_FiveAnswersFinalizeInOrder(t *testing.T) {
	j := NewJourney()
	answers := []string{"a", "b", "c", "d", "e"}

	for i, a := range answers {
		require.False(t, j.Finalized(), "finalized before answer %d", i)
		require.NoError(t, j.Advance(a))
	}

	require.True(t, j.Finalized())
	require.Equal(t, PhaseGenerating, j.Phase())
	require.Len(t, j.Answers(), 5)
	require.Equal(t, answers, j.Answers())
}

func TestAdvance_AfterFinalizeFails(t *testing.T) {
	j := NewJourney()
	for _, a := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, j.Advance(a))
	}

	err := j.Advance("late answer")

	require.ErrorIs(t, err, ErrFinalized)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, j.Answers())
}

func TestRetreat_AtFirstQuestionIsNoOp(t *testing.T) {
	j := NewJourney()

	j.Retreat()

	require.Equal(t, 0, j.Index())
}

func TestRetreat_StepsBackAndAnswerCanBeReplaced(t *testing.T) {
	j := NewJourney()
	require.NoError(t, j.Advance("first draft"))
	require.Equal(t, 1, j.Index())

	j.Retreat()
	require.Equal(t, 0, j.Index())

	require.NoError(t, j.Advance("second draft"))
	require.Equal(t, "second draft", j.Answers()[0])
}

func TestSeedPrompt_JoinsAnswersInOrder(t *testing.T) {
	j := NewJourney()
	for _, a := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, j.Advance(a))
	}

	require.Equal(t, "a, b, c, d, e", j.SeedPrompt())
}

func TestComposeSeed(t *testing.T) {
	cases := []struct {
		name    string
		answers []string
		want    string
	}{
		{"all answers", []string{"a", "b", "c", "d", "e"}, "a, b, c, d, e"},
		{"trims whitespace", []string{" a ", "b"}, "a, b"},
		{"skips blanks", []string{"a", "", "c"}, "a, c"},
		{"empty", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ComposeSeed(tc.answers))
		})
	}
}

func TestAnswers_ReturnsCopy(t *testing.T) {
	j := NewJourney()
	require.NoError(t, j.Advance("a"))

	got := j.Answers()
	got[0] = "mutated"

	require.Equal(t, "a", j.Answers()[0])
}

func TestAdvance_ConcurrentCallersSerialize(t *testing.T) {
	j := NewJourney()
	answers := []string{"first", "second", "third", "fourth", "fifth"}

	var wg sync.WaitGroup
	errs := make(chan error, len(answers))
	for _, answer := range answers {
		wg.Add(1)
		go func(answer string) {
			defer wg.Done()
			errs <- j.Advance(answer)
		}(answer)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.True(t, j.Finalized())
	require.ElementsMatch(t, answers, j.Answers(), "every answer recorded exactly once")
}

func TestAdvance_ConcurrentWithRetreatKeepsIndexInRange(t *testing.T) {
	j := NewJourney()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = j.Advance("an answer")
		}()
		go func() {
			defer wg.Done()
			j.Retreat()
		}()
	}
	wg.Wait()

	require.GreaterOrEqual(t, j.Index(), 0)
	require.Less(t, j.Index(), len(Questions))
}
