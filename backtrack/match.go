package backtrack

// match reports whether the node matches at the context's cursor,
// advancing the cursor past whatever it consumed. On failure the context
// is left mid-attempt; callers either discard it (when probing a
// duplicate) or propagate the failure (when matching in place).
func (n *Node) match(ctx *context) bool {
	switch n.Op {
	case OpChar:
		r, ok := ctx.nextChar()
		return ok && r == ctx.foldRune(n.Lo)

	case OpAnyChar:
		_, ok := ctx.nextChar()
		return ok

	case OpRange:
		r, ok := ctx.nextChar()
		return ok && r >= ctx.foldRune(n.Lo) && r <= ctx.foldRune(n.Hi)

	case OpClass:
		// Members are probed on duplicates; the live cursor advances one
		// character no matter what, so a negation wrapping the class still
		// consumes the character it rejected.
		matched := false
		for _, member := range n.Sub {
			dup := ctx.clone()
			if member.match(&dup) {
				matched = true
				break
			}
		}
		ctx.nextChar()
		return matched

	case OpNot:
		if ctx.atEnd() {
			return false
		}
		return !n.Sub[0].match(ctx)

	case OpSeq:
		outer := ctx.following
		for i, sub := range n.Sub {
			if i+1 < len(n.Sub) {
				ctx.following = &followFrame{nodes: n.Sub[i+1:], next: outer}
			} else {
				ctx.following = outer
			}
			if !sub.match(ctx) {
				return false
			}
		}
		ctx.following = outer
		return true

	case OpAlternate:
		// First branch that matches wins; the choice is never revisited,
		// even if it starves the rest of the pattern.
		for _, branch := range n.Sub {
			dup := ctx.clone()
			if branch.match(&dup) {
				*ctx = dup
				return true
			}
		}
		return false

	case OpOptional:
		// The repetition is kept only when the rest of the pattern still
		// matches after it. Either way the node itself succeeds.
		dup := ctx.clone()
		if n.Sub[0].match(&dup) {
			probe := dup.clone()
			if probe.followingMatch() {
				*ctx = dup
			}
		}
		return true

	case OpPlus:
		if !n.Sub[0].match(ctx) {
			return false
		}
		return starLoop(n.Sub[0], ctx, n.Lazy)

	case OpStar:
		return starLoop(n.Sub[0], ctx, n.Lazy)

	case OpRepeat:
		count := 0
		for ; count < n.Min; count++ {
			if !n.Sub[0].match(ctx) {
				return false
			}
		}
		for {
			if n.Max >= 0 && count > n.Max {
				// Input that sustains more than Max repetitions fails the
				// node outright; there is no backing off to Max.
				return false
			}
			dup := ctx.clone()
			if !n.Sub[0].match(&dup) || dup.pos == ctx.pos {
				break
			}
			*ctx = dup
			count++
		}
		return true

	case OpGroup:
		ctx.pushCapture(n.Cap)
		ok := n.Sub[0].match(ctx)
		ctx.updateOpenCaptures()
		ctx.popCapture()
		return ok

	case OpBackref:
		for _, want := range ctx.capturedText(n.Cap) {
			got, ok := ctx.nextChar()
			if !ok || got != ctx.foldRune(want) {
				return false
			}
		}
		return true

	case OpBeginText:
		return ctx.pos == 0

	case OpEndText:
		_, ok := ctx.nextChar()
		return !ok

	default:
		return false
	}
}

// starLoop runs the zero-or-more repetition of inner. Open captures are
// refreshed on entry and after every committed repetition. A repetition
// that consumes nothing ends the loop; it could never change the outcome
// again and would otherwise spin forever.
func starLoop(inner *Node, ctx *context, lazy bool) bool {
	ctx.updateOpenCaptures()
	if lazy {
		return lazyStarLoop(inner, ctx)
	}
	return greedyStarLoop(inner, ctx)
}

// greedyStarLoop consumes repetitions as long as inner matches, remembering
// the most recent cursor at which the rest of the pattern also matched.
// When inner stops matching, the loop falls back to that cursor if one was
// recorded and otherwise keeps everything it consumed.
func greedyStarLoop(inner *Node, ctx *context) bool {
	var fallback *context
	for {
		probe := ctx.clone()
		if probe.followingMatch() {
			saved := ctx.clone()
			fallback = &saved
		}

		dup := ctx.clone()
		if inner.match(&dup) && dup.pos > ctx.pos {
			*ctx = dup
			ctx.updateOpenCaptures()
		} else {
			if fallback != nil {
				*ctx = *fallback
			}
			return true
		}
	}
}

// lazyStarLoop stops consuming as soon as the rest of the pattern matches.
// With nothing left to match afterwards it keeps consuming like the greedy
// loop, since there is no continuation to hand the input over to.
func lazyStarLoop(inner *Node, ctx *context) bool {
	for {
		if ctx.hasFollowing() {
			probe := ctx.clone()
			if probe.followingMatch() {
				return true
			}
		}

		dup := ctx.clone()
		if inner.match(&dup) && dup.pos > ctx.pos {
			*ctx = dup
			ctx.updateOpenCaptures()
		} else {
			return true
		}
	}
}
