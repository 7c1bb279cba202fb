package jpeg

/*
#cgo pkg-config: libjpeg
#include <stdio.h>
#include <string.h>
#include <jpeglib.h>
#include <setjmp.h>

typedef struct {
    struct jpeg_error_mgr pub;
    jmp_buf               jmpbuf;
    char                  msg[JMSG_LENGTH_MAX];
} read_err_mgr;

static void read_error_exit(j_common_ptr cinfo) {
    read_err_mgr *e = (read_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

typedef struct {
    int  width;
    int  height;
    int  num_components;
    int  color_space;   // J_COLOR_SPACE of the stored data
    int  progressive;
    int  luma_h_samp;
    int  luma_v_samp;
    int  has_error;
    char error_msg[JMSG_LENGTH_MAX];
} read_result;

// read_jpeg parses the header of buf. When out is non-NULL the image is
// also decompressed to RGB into out, which must hold exactly
// width*height*3 bytes.
static read_result read_jpeg(const unsigned char *buf, unsigned long buf_size,
                             unsigned char *out, unsigned long out_size) {
    read_result res;
    memset(&res, 0, sizeof(res));

    struct jpeg_decompress_struct cinfo;
    read_err_mgr jerr;

    cinfo.err = jpeg_std_error(&jerr.pub);
    jerr.pub.error_exit = read_error_exit;

    if (setjmp(jerr.jmpbuf)) {
        memcpy(res.error_msg, jerr.msg, sizeof(res.error_msg));
        res.has_error = 1;
        jpeg_destroy_decompress(&cinfo);
        return res;
    }

    jpeg_create_decompress(&cinfo);
    jpeg_mem_src(&cinfo, (unsigned char *)buf, buf_size);
    jpeg_read_header(&cinfo, TRUE);

    res.width = cinfo.image_width;
    res.height = cinfo.image_height;
    res.num_components = cinfo.num_components;
    res.color_space = cinfo.jpeg_color_space;
    res.progressive = cinfo.progressive_mode ? 1 : 0;
    res.luma_h_samp = cinfo.comp_info[0].h_samp_factor;
    res.luma_v_samp = cinfo.comp_info[0].v_samp_factor;

    if (out != NULL) {
        cinfo.out_color_space = JCS_RGB;
        jpeg_start_decompress(&cinfo);

        unsigned long stride = (unsigned long)cinfo.output_width * 3;
        if (cinfo.output_components != 3 || stride * cinfo.output_height != out_size) {
            snprintf(res.error_msg, sizeof(res.error_msg),
                     "unexpected output shape %ux%ux%d",
                     cinfo.output_width, cinfo.output_height, cinfo.output_components);
            res.has_error = 1;
            jpeg_destroy_decompress(&cinfo);
            return res;
        }
        while (cinfo.output_scanline < cinfo.output_height) {
            JSAMPROW row = out + (size_t)cinfo.output_scanline * stride;
            jpeg_read_scanlines(&cinfo, &row, 1);
        }
        jpeg_finish_decompress(&cinfo);
    }

    jpeg_destroy_decompress(&cinfo);
    return res;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/OtaniMakoto/CSV2img/internal/ir"
)

// ImageInfo contains metadata about a JPEG file.
type ImageInfo struct {
	Width         int
	Height        int
	NumComponents int
	ColorSpace    string
	Progressive   bool
	Sampling      string // luma sampling factors, e.g. "2x2"
}

var colorSpaces = map[int]string{
	0: "Unknown",
	1: "Grayscale",
	2: "RGB",
	3: "YCbCr",
	4: "CMYK",
	5: "YCCK",
}

// GetInfo reads JPEG header metadata without decoding the image.
func GetInfo(data []byte) (*ImageInfo, error) {
	res, err := readJPEG(data, nil)
	if err != nil {
		return nil, err
	}
	return newImageInfo(res), nil
}

// DecodeRGB decodes a JPEG held in memory to an RGB raster.
func DecodeRGB(data []byte) (*ir.RGBImage, error) {
	hdr, err := readJPEG(data, nil)
	if err != nil {
		return nil, err
	}

	img := ir.NewRGBImage(int(hdr.width), int(hdr.height))
	if len(img.Pixels) == 0 {
		return nil, fmt.Errorf("libjpeg: empty image %dx%d", img.Width, img.Height)
	}
	if _, err := readJPEG(data, img.Pixels); err != nil {
		return nil, err
	}
	return img, nil
}

// readJPEG parses data and, when out is non-nil, decodes RGB pixels into it.
func readJPEG(data, out []byte) (C.read_result, error) {
	if len(data) < 2 {
		return C.read_result{}, errors.New("data too short for JPEG")
	}

	var outPtr *C.uchar
	if out != nil {
		outPtr = (*C.uchar)(unsafe.Pointer(&out[0]))
	}
	res := C.read_jpeg(
		(*C.uchar)(unsafe.Pointer(&data[0])), C.ulong(len(data)),
		outPtr, C.ulong(len(out)),
	)
	if res.has_error != 0 {
		return res, fmt.Errorf("libjpeg: %s", C.GoString(&res.error_msg[0]))
	}
	return res, nil
}

func newImageInfo(res C.read_result) *ImageInfo {
	cs, ok := colorSpaces[int(res.color_space)]
	if !ok {
		cs = fmt.Sprintf("J_COLOR_SPACE(%d)", int(res.color_space))
	}
	return &ImageInfo{
		Width:         int(res.width),
		Height:        int(res.height),
		NumComponents: int(res.num_components),
		ColorSpace:    cs,
		Progressive:   res.progressive != 0,
		Sampling:      fmt.Sprintf("%dx%d", int(res.luma_h_samp), int(res.luma_v_samp)),
	}
}
