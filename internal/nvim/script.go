package nvim

import (
	"fmt"
	"strings"
)

// StatusScript returns vimscript that continuously writes the editing
// state to statusPath and positions the cursor at the 1-based start
// coordinates. The instance sources it at startup.
//
// Each write produces a single record of the form
//
//	LINE:<n>,COL:<n>,MODE:<m>,DETAILED:<m>,OP:<op>
//
// refreshed on cursor movement, mode changes, text changes, and a timer
// so that mode-only transitions without accompanying events still appear.
func StatusScript(statusPath string, startLine, startCol int) string {
	if startLine < 1 {
		startLine = 1
	}
	if startCol < 1 {
		startCol = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `set nocompatible
set shortmess+=I

function! VimdojoUpdateStatus()
  let l:op = exists('v:operator') ? v:operator : ''
  let l:status = 'LINE:' . line('.') . ',COL:' . col('.') . ',MODE:' . mode() . ',DETAILED:' . mode(1) . ',OP:' . l:op
  call writefile([l:status], '%s')
endfunction

augroup VimdojoStatus
  autocmd!
  autocmd CursorMoved,CursorMovedI * call VimdojoUpdateStatus()
  autocmd ModeChanged * call VimdojoUpdateStatus()
  autocmd TextChanged,TextChangedI * call VimdojoUpdateStatus()
augroup END

call timer_start(100, {-> VimdojoUpdateStatus()}, {'repeat': -1})

call cursor(%d, %d)
call VimdojoUpdateStatus()
`, statusPath, startLine, startCol)
	return b.String()
}
